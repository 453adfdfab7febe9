package recommend

import (
	"strings"

	"resume-screen-go/internal/constants"
)

// Role 岗位条目：岗位名与其要求的技能列表（全部小写参与比较）
type Role struct {
	Name           string
	RequiredSkills []string
}

// defaultCatalog 固定岗位目录。
// 这是一个有序查表：推荐结果按目录顺序排列，而非按匹配强度排序。
var defaultCatalog = []Role{
	{Name: "Software Engineer", RequiredSkills: []string{"python", "java", "c++", "software development"}},
	{Name: "Data Scientist", RequiredSkills: []string{"python", "data analysis", "machine learning", "statistics"}},
	{Name: "Web Developer", RequiredSkills: []string{"html", "css", "javascript", "react", "node.js"}},
	{Name: "Data Analyst", RequiredSkills: []string{"excel", "sql", "data visualization", "python"}},
	{Name: "Product Manager", RequiredSkills: []string{"agile", "project management", "team leadership"}},
	{Name: "UX Designer", RequiredSkills: []string{"design", "ux/ui", "prototyping", "figma"}},
}

// Recommender 岗位推荐与技能缺口分析器
type Recommender struct {
	catalog []Role
}

// NewRecommender 使用默认岗位目录创建推荐器
func NewRecommender() *Recommender {
	return &Recommender{catalog: defaultCatalog}
}

// NewRecommenderWithCatalog 使用自定义目录创建推荐器，目录顺序即输出顺序
func NewRecommenderWithCatalog(catalog []Role) *Recommender {
	return &Recommender{catalog: catalog}
}

// Recommend 根据候选人技能与年限推荐岗位，并给出每个推荐岗位缺少的技能。
//
// 技能集为空时走独立路径：返回单元素的伪岗位提示与空映射。
// 注意这与"有技能但一个岗位都没命中"（空列表+空映射）是两种不同结果。
func (r *Recommender) Recommend(skills []string, experience float64) ([]string, map[string][]string) {
	if len(skills) == 0 {
		return []string{constants.NoSkillsFoundMessage}, map[string][]string{}
	}

	skillSet := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillSet[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	recommended := make([]string, 0, len(r.catalog))
	missingSkills := make(map[string][]string)

	for _, role := range r.catalog {
		matched := false
		var missing []string
		for _, required := range role.RequiredSkills {
			if _, ok := skillSet[required]; ok {
				matched = true
			} else {
				missing = append(missing, required)
			}
		}

		if matched && experience >= 0 {
			recommended = append(recommended, role.Name)
			if len(missing) > 0 {
				missingSkills[role.Name] = missing
			}
		}
	}

	return recommended, missingSkills
}

// MergeMissingSkills 合并历史缺口与本次计算的缺口，纯函数。
//
// 三步顺序不可调换：
//  1. 按岗位对缺口列表求并集（去重，保序：先历史后新增）；
//  2. 剔除候选人当前已掌握的技能（两次运行之间学会的技能由此消去）；
//  3. 只保留当前推荐岗位下的条目。
//
// 剔除后变空的岗位不再保留，保证 merge(M, M) 与 filter(subtract(M)) 一致。
func MergeMissingSkills(stored, fresh map[string][]string, currentSkills, currentRoles []string) map[string][]string {
	merged := make(map[string][]string, len(stored)+len(fresh))
	for role, skills := range stored {
		merged[role] = appendUnique(nil, skills)
	}
	for role, skills := range fresh {
		merged[role] = appendUnique(merged[role], skills)
	}

	known := make(map[string]struct{}, len(currentSkills))
	for _, s := range currentSkills {
		known[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	for role, skills := range merged {
		kept := skills[:0]
		for _, s := range skills {
			if _, ok := known[strings.ToLower(strings.TrimSpace(s))]; !ok {
				kept = append(kept, s)
			}
		}
		merged[role] = kept
	}

	roleSet := make(map[string]struct{}, len(currentRoles))
	for _, role := range currentRoles {
		roleSet[role] = struct{}{}
	}
	result := make(map[string][]string)
	for role, skills := range merged {
		if _, ok := roleSet[role]; ok && len(skills) > 0 {
			result[role] = skills
		}
	}
	return result
}

// appendUnique 追加不重复的元素，保持先到先得的顺序
func appendUnique(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range src {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			dst = append(dst, s)
		}
	}
	return dst
}
