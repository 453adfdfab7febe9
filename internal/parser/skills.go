package parser

// skillVocabulary 技能固定词表，覆盖IT、数据、金融、办公、医疗、销售、
// 人力资源、制造、教育、法务、设计等领域。
// 按序遍历匹配（先出现者先判），全部保持小写以便比较。
var skillVocabulary = []string{
	// 信息技术与软件开发
	"python", "java", "c", "c++", "c#", "ruby", "swift", "kotlin", "go", "rust",
	"html", "css", "javascript", "typescript", "react", "angular", "vue.js", "node.js",
	"sql", "mysql", "postgresql", "mongodb", "firebase", "redis", "oracle",
	"aws", "azure", "google cloud", "docker", "kubernetes", "terraform", "jenkins",
	"machine learning", "deep learning", "tensorflow", "pytorch", "nlp", "computer vision",
	"ethical hacking", "cybersecurity", "network security", "siem",

	// 数据科学与商业智能
	"data analysis", "data visualization", "power bi", "tableau", "excel",
	"big data", "hadoop", "apache spark", "google analytics",
	"business intelligence", "market research", "data mining",

	// 金融与会计
	"financial modeling", "investment analysis", "risk management",
	"taxation", "auditing", "budgeting", "forecasting",
	"quickbooks", "sap", "tally", "xero", "oracle financials",

	// 办公与微软工具
	"ms word", "ms excel", "ms powerpoint", "ms outlook", "ms teams",
	"google docs", "google sheets", "google slides",
	"microsoft office", "google workspace",

	// 医疗健康
	"medical coding", "patient care", "pharmacology", "nursing",
	"electronic medical records (emr)", "medical billing", "health informatics",
	"public health", "epidemiology", "radiology",

	// 销售与市场营销
	"digital marketing", "seo", "sem", "ppc", "social media marketing",
	"content marketing", "email marketing",
	"crm", "salesforce", "hubspot", "lead generation",

	// 人力资源与招聘
	"talent acquisition", "employee relations", "hr analytics",
	"payroll management", "compensation & benefits", "labor laws",
	"linkedin recruiting", "applicant tracking system (ats)",

	// 制造与供应链
	"inventory management", "logistics", "procurement", "vendor management",
	"lean manufacturing", "six sigma", "quality assurance (qa)",
	"sap erp", "supply chain analytics",

	// 教育与培训
	"curriculum development", "instructional design", "e-learning",
	"learning management system (lms)", "online teaching", "public speaking",
	"academic research", "student engagement",

	// 法务与合规
	"corporate law", "intellectual property (ip)", "legal research",
	"contract drafting", "litigation", "compliance & risk management",
	"regulatory affairs", "government relations",

	// 设计与创意
	"graphic design", "ui/ux", "adobe photoshop", "illustrator", "figma",
	"3d modeling", "motion graphics", "animation", "video editing",
	"interior design", "fashion design", "cad software",

	// 岗位目录中用到的补充条目
	"software development", "statistics", "agile", "project management",
	"team leadership", "design", "ux/ui", "prototyping",
}
