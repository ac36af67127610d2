package recommend

// keywordIcon maps a keyword to its candidate icons, best first.
type keywordIcon struct {
	keyword string
	icons   []string
}

// Icon categories, used both as candidate lists and for IconCategory.
var iconCategories = []struct {
	name  string
	icons []string
}{
	{"data", []string{"bar-chart", "line-chart", "pie-chart", "trending-up", "trending-down", "database", "hard-drive", "server", "cloud", "file-chart"}},
	{"achievement", []string{"target", "trophy", "award", "medal", "star", "flag", "check-circle", "goal", "crosshair"}},
	{"tech", []string{"cpu", "bot", "sparkles", "zap", "lightbulb", "circuit-board", "microchip", "radio", "wifi", "bluetooth"}},
	{"collaboration", []string{"users", "user-plus", "handshake", "people", "groups", "git-branch", "share-2", "network"}},
	{"planning", []string{"calendar", "clock", "timer", "hourglass", "timeline", "gantt-chart", "sunset", "sunrise"}},
	{"process", []string{"git-merge", "git-commit", "workflow", "settings", "sliders", "filter", "sort-asc", "sort-desc"}},
	{"security", []string{"shield", "lock", "key", "fingerprint", "eye", "alert-triangle", "alert-circle", "bug"}},
	{"creative", []string{"palette", "brush", "pen-tool", "image", "shapes", "box", "circle", "triangle"}},
	{"communication", []string{"message-square", "mail", "send", "phone", "video", "mic", "speaker", "bell"}},
	{"business", []string{"dollar-sign", "currency", "credit-card", "banknote", "wallet", "shopping-cart", "package", "truck"}},
	{"learning", []string{"book", "book-open", "graduation-cap", "chalkboard", "scroll", "library", "bookmark"}},
	{"health", []string{"heart", "activity", "stethoscope", "pill", "apple", "dumbbell", "bicycle"}},
}

func categoryIcons(name string) []string {
	for _, c := range iconCategories {
		if c.name == name {
			return c.icons
		}
	}
	return nil
}

// keywordTable is scanned in order; the first keyword contained in the text
// wins regardless of where it occurs or how long it is. Keep it a slice.
var keywordTable = []keywordIcon{
	// data
	{"数据", categoryIcons("data")},
	{"增长", []string{"trending-up"}},
	{"下降", []string{"trending-down"}},
	{"分析", []string{"bar-chart", "pie-chart", "line-chart"}},
	{"统计", []string{"bar-chart", "database"}},
	{"图表", []string{"line-chart", "pie-chart"}},
	{"报表", []string{"file-chart"}},
	{"数据库", []string{"database", "server"}},
	{"云", []string{"cloud"}},
	{"存储", []string{"hard-drive"}},

	// achievement
	{"目标", []string{"target", "flag"}},
	{"目的", []string{"target", "crosshair"}},
	{"成果", []string{"trophy", "award"}},
	{"成就", []string{"medal", "star", "trophy"}},
	{"完成", []string{"check-circle", "award"}},
	{"成功", []string{"trophy", "star"}},

	// tech
	{"ai", []string{"sparkles", "cpu", "bot"}},
	{"人工智能", []string{"cpu", "sparkles", "bot"}},
	{"机器学习", []string{"brain", "cpu"}},
	{"深度学习", []string{"cpu", "layers"}},
	{"算法", []string{"cpu", "git-branch"}},
	{"自动化", []string{"bot", "zap"}},
	{"创新", []string{"lightbulb", "sparkles"}},
	{"技术", []string{"cpu", "settings"}},
	{"科技", []string{"cpu", "zap"}},
	{"智能", []string{"sparkles", "bot"}},
	{"优化", []string{"zap", "sliders"}},
	{"性能", []string{"zap", "gauge"}},
	{"效率", []string{"zap", "timer"}},

	// collaboration
	{"团队", []string{"users", "people"}},
	{"协作", []string{"users", "handshake"}},
	{"合作", []string{"handshake", "network"}},
	{"沟通", []string{"message-square", "users"}},
	{"会议", []string{"users", "video"}},
	{"组织", []string{"building-2", "users"}},
	{"部门", []string{"building-2", "users"}},
	{"人力资源", []string{"users", "user-plus"}},
	{"招聘", []string{"user-plus", "users"}},
	{"培训", []string{"graduation-cap", "book-open"}},

	// planning
	{"时间", []string{"clock", "timer"}},
	{"计划", []string{"calendar", "timeline"}},
	{"进度", []string{"timeline", "gantt-chart"}},
	{"里程碑", []string{"flag", "target"}},
	{"截止", []string{"hourglass", "calendar"}},
	{"未来", []string{"sunrise", "calendar"}},
	{"过去", []string{"sunset", "history"}},
	{"现在", []string{"clock", "timer"}},
	{"周期", []string{"rotate-cw", "calendar"}},
	{"日程", []string{"calendar", "clock"}},

	// process
	{"流程", []string{"workflow", "git-branch"}},
	{"步骤", []string{"list-ordered", "workflow"}},
	{"阶段", []string{"layers", "git-branch"}},
	{"方案", []string{"lightbulb", "file"}},
	{"策略", []string{"target", "compass"}},
	{"方法", []string{"settings", "sliders"}},
	{"配置", []string{"settings", "sliders"}},
	{"设置", []string{"settings", "sliders"}},
	{"筛选", []string{"filter", "funnel"}},
	{"排序", []string{"sort-asc", "sort-desc"}},

	// security
	{"安全", []string{"shield", "lock"}},
	{"保护", []string{"shield", "lock"}},
	{"风险", []string{"alert-triangle", "shield"}},
	{"问题", []string{"alert-circle", "bug"}},
	{"错误", []string{"x-circle", "bug"}},
	{"警告", []string{"alert-triangle", "bell"}},
	{"隐私", []string{"eye-off", "lock"}},
	{"权限", []string{"key", "lock"}},
	{"密码", []string{"key", "lock"}},

	// creative
	{"设计", []string{"palette", "pen-tool"}},
	{"创意", []string{"lightbulb", "sparkles"}},
	{"界面", []string{"layout", "monitor"}},
	{"用户体验", []string{"smile", "users"}},
	{"ui", []string{"layout", "monitor"}},
	{"ux", []string{"smile", "users"}},
	{"原型", []string{"box", "layers"}},
	{"测试", []string{"flask", "bug"}},

	// communication
	{"消息", []string{"message-square", "mail"}},
	{"通知", []string{"bell", "message-square"}},
	{"邮件", []string{"mail", "send"}},
	{"电话", []string{"phone", "signal"}},
	{"视频", []string{"video", "monitor"}},
	{"音频", []string{"mic", "speaker"}},
	{"广播", []string{"radio", "speaker"}},
	{"推送", []string{"send", "bell"}},
	{"发布", []string{"rocket", "send"}},

	// business
	{"收入", []string{"dollar-sign", "trending-up"}},
	{"支出", []string{"dollar-sign", "trending-down"}},
	{"利润", []string{"trending-up", "dollar-sign"}},
	{"成本", []string{"wallet", "dollar-sign"}},
	{"预算", []string{"calculator", "wallet"}},
	{"销售", []string{"shopping-cart", "trending-up"}},
	{"营销", []string{"megaphone", "trending-up"}},
	{"客户", []string{"users", "user-check"}},
	{"订单", []string{"shopping-cart", "package"}},
	{"物流", []string{"truck", "package"}},
	{"库存", []string{"package", "warehouse"}},

	// learning
	{"学习", []string{"book", "graduation-cap"}},
	{"教育", []string{"graduation-cap", "book-open"}},
	{"知识", []string{"book", "lightbulb"}},
	{"技能", []string{"zap", "award"}},
	{"课程", []string{"book-open", "graduation-cap"}},
	{"文档", []string{"file-text", "scroll"}},
	{"资料", []string{"folder", "file"}},
	{"笔记", []string{"book-mark", "file-text"}},

	// health
	{"健康", []string{"heart", "activity"}},
	{"运动", []string{"dumbbell", "bicycle"}},
	{"饮食", []string{"apple", "utensils"}},
	{"睡眠", []string{"moon", "bed"}},
	{"医疗", []string{"stethoscope", "pill"}},
	{"健身", []string{"dumbbell", "activity"}},
}
