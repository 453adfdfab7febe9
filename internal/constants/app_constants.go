package constants

const (
	// SentinelUnknown 姓名/学历提取无果时的占位值
	SentinelUnknown = "Unknown"
	// SentinelNotProvided 邮箱/电话提取无果时的占位值
	SentinelNotProvided = "Not Provided"

	// 情感分类标签
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"

	// DefaultStoreCapacity 简历库的默认容量上限，超出时按最早上传时间淘汰
	DefaultStoreCapacity = 10

	// NoSkillsFoundMessage 候选人技能集为空时返回的伪岗位提示
	// 注意：这是独立的代码路径，与"有技能但无岗位命中"（空列表）不同
	NoSkillsFoundMessage = "No skills found. Try adding skills to your resume."
)

// 学历等级编码：固定4路查表，未识别/Unknown 默认按 Bachelors 处理
const (
	EducationCodeDiploma   = 0
	EducationCodeBachelors = 1
	EducationCodeMasters   = 2
	EducationCodePhD       = 3
)
