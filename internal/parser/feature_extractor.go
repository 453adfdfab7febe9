package parser

import (
	"context"
	"regexp"
	"sort"
	"strings"

	prose "github.com/jdkato/prose/v2"

	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/logger"
	"resume-screen-go/internal/types"
)

var (
	emailRegex = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

	// 宽容的国际电话格式：可选国家码、可选括号区号、两段数字主体
	// 末段放宽到3-5位，使 "+1-555-1234567" 这类7位本地号也能命中
	phoneRegex = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(?\d{2,4}\)?[-.\s]?)?\d{4,5}[-.\s]?\d{3,5}`)

	experienceRegex = regexp.MustCompile(`(?i)(\d+)\s+(years|yrs|year)`)

	// 姓名候选行不允许是10位以上的裸数字序列（通常是电话号码）
	bareDigitsRegex = regexp.MustCompile(`^\+?\d{10,}$`)

	fallbackTokenRegex = regexp.MustCompile(`[a-z0-9]+`)
)

// 学历关键词，按优先级排列，首个命中者生效（次序即决胜规则）
var educationKeywords = []string{
	"Diploma", "Engineering", "Bachelors", "Masters", "PhD", "B.Sc", "BEng", "M.Sc",
}

// 姓名候选行中不允许出现的符号集合
const nameForbiddenChars = "!@#$%^&*(){}[]<>?/|\\"

// FeatureExtractor 从简历原始文本中解析结构化特征
// 对任意输入都是全函数：解析无果的字段填入约定的占位值，从不报错
type FeatureExtractor struct{}

// NewFeatureExtractor 创建特征提取器
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{}
}

// Extract 解析简历文本，返回结构化特征集
func (fe *FeatureExtractor) Extract(ctx context.Context, text string) *types.FeatureSet {
	// NLP文档只构建一次：命名实体用于姓名兜底，词元流用于技能匹配
	var doc *prose.Document
	if strings.TrimSpace(text) != "" {
		d, err := prose.NewDocument(text)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("NLP文档构建失败，退化为纯正则解析")
		} else {
			doc = d
		}
	}

	return &types.FeatureSet{
		Name:       fe.extractName(text, doc),
		Email:      firstMatchOr(emailRegex, text, constants.SentinelNotProvided),
		Phone:      firstMatchOr(phoneRegex, text, constants.SentinelNotProvided),
		Education:  fe.extractEducation(text),
		Experience: fe.extractExperience(text),
		Skills:     fe.extractSkills(text, doc),
	}
}

// extractName 在前5个非空行中寻找符合姓名特征的行，找不到时退回NER的PERSON实体
func (fe *FeatureExtractor) extractName(text string, doc *prose.Document) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	name := constants.SentinelUnknown
	for i := 0; i < len(lines) && i < 5; i++ {
		if isNameCandidate(lines[i]) {
			name = lines[i]
			break
		}
	}

	if name == constants.SentinelUnknown && doc != nil {
		for _, ent := range doc.Entities() {
			if ent.Label == "PERSON" {
				name = ent.Text
				break
			}
		}
	}

	// 处理 "Resume - John Smith" 一类的连字格式，仅保留最后一段
	if idx := strings.LastIndex(name, "-"); idx >= 0 {
		name = strings.TrimSpace(name[idx+1:])
	}
	return name
}

// isNameCandidate 判断一行是否像候选人姓名
func isNameCandidate(line string) bool {
	if line == "" {
		return false
	}
	if bareDigitsRegex.MatchString(line) {
		return false
	}
	if len(strings.Fields(line)) > 4 {
		return false
	}
	if strings.ContainsAny(line, nameForbiddenChars) {
		return false
	}
	upper := strings.ToUpper(line)
	if strings.Contains(upper, "PROFILE") || strings.Contains(upper, "EMAIL") || strings.Contains(upper, "PHONE") {
		return false
	}
	if isAllDigits(line) {
		return false
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// extractEducation 按优先级词表做大小写不敏感的子串扫描，首个命中者生效
func (fe *FeatureExtractor) extractEducation(text string) string {
	lower := strings.ToLower(text)
	for _, keyword := range educationKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return keyword
		}
	}
	return constants.SentinelUnknown
}

// extractExperience 取首个 "<整数> years/yrs/year" 提及，不尝试求和或解析区间
func (fe *FeatureExtractor) extractExperience(text string) int {
	m := experienceRegex.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	years := 0
	for _, r := range m[1] {
		years = years*10 + int(r-'0')
	}
	return years
}

// extractSkills 按序遍历技能词表做短语级匹配：
// 纯字母数字的单词条目要求词元精确相等，含空格或符号的条目按带边界的子串匹配，
// 避免分词器拆散 "machine learning" 这类复合技能导致的漏召。
func (fe *FeatureExtractor) extractSkills(text string, doc *prose.Document) []string {
	normalized := strings.ToLower(text)

	tokenSet := make(map[string]struct{})
	if doc != nil {
		for _, tok := range doc.Tokens() {
			tokenSet[strings.ToLower(tok.Text)] = struct{}{}
		}
	} else {
		for _, tok := range fallbackTokenRegex.FindAllString(normalized, -1) {
			tokenSet[tok] = struct{}{}
		}
	}

	found := make(map[string]struct{})
	for _, skill := range skillVocabulary {
		if _, ok := found[skill]; ok {
			continue
		}
		if isPlainToken(skill) {
			if _, ok := tokenSet[skill]; ok {
				found[skill] = struct{}{}
			}
			continue
		}
		if containsPhrase(normalized, skill) {
			found[skill] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

// isPlainToken 判断词表条目是否为纯字母数字单词
func isPlainToken(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// containsPhrase 带词边界的子串匹配：命中位置的前后字符都不能是字母或数字
func containsPhrase(text, phrase string) bool {
	start := 0
	for {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		before := idx - 1
		after := idx + len(phrase)
		if (before < 0 || !isAlnumByte(text[before])) &&
			(after >= len(text) || !isAlnumByte(text[after])) {
			return true
		}
		start = idx + 1
	}
}

func isAlnumByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// firstMatchOr 返回首个正则命中，无命中时返回占位值
func firstMatchOr(re *regexp.Regexp, text, sentinel string) string {
	if m := re.FindString(text); m != "" {
		return m
	}
	return sentinel
}

// JoinSkills 把技能集序列化为排序后的逗号连接串（落库格式）
func JoinSkills(skills []string) string {
	sorted := make([]string, len(skills))
	copy(sorted, skills)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

// SplitSkills 反序列化落库的技能串
func SplitSkills(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, strings.ToLower(s))
		}
	}
	return skills
}
