package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screen-go/internal/constants"
)

func TestRecommendDataScientistScenario(t *testing.T) {
	r := NewRecommender()
	skills := []string{"python", "data analysis", "machine learning"}

	roles, missing := r.Recommend(skills, 3)

	// 结果按目录顺序排列，不按匹配强度
	require.Equal(t, []string{"Software Engineer", "Data Scientist", "Data Analyst"}, roles)
	assert.Equal(t, []string{"statistics"}, missing["Data Scientist"])
	assert.Equal(t, []string{"java", "c++", "software development"}, missing["Software Engineer"])
	assert.Equal(t, []string{"excel", "sql", "data visualization"}, missing["Data Analyst"])
}

func TestRecommendFullMatchOmittedFromMissing(t *testing.T) {
	r := NewRecommender()
	skills := []string{"python", "data analysis", "machine learning", "statistics"}

	roles, missing := r.Recommend(skills, 1)

	assert.Contains(t, roles, "Data Scientist")
	// 完全匹配的岗位不出现在缺失映射中
	_, ok := missing["Data Scientist"]
	assert.False(t, ok)
}

func TestRecommendEmptySkills(t *testing.T) {
	r := NewRecommender()
	roles, missing := r.Recommend(nil, 5)

	// 空技能集是独立路径：单元素伪岗位提示 + 空映射
	require.Equal(t, []string{constants.NoSkillsFoundMessage}, roles)
	assert.Empty(t, missing)
}

func TestRecommendNoRoleMatched(t *testing.T) {
	r := NewRecommender()
	roles, missing := r.Recommend([]string{"cobol"}, 10)

	// 有技能但一个岗位都没命中：空列表+空映射，而不是伪岗位提示
	assert.Empty(t, roles)
	assert.Empty(t, missing)
}

func TestRecommendCaseInsensitive(t *testing.T) {
	r := NewRecommender()
	roles, _ := r.Recommend([]string{" Python ", "SQL"}, 2)

	assert.Contains(t, roles, "Software Engineer")
	assert.Contains(t, roles, "Data Analyst")
}

func TestMergeMissingSkillsSubtractsLearned(t *testing.T) {
	stored := map[string][]string{
		"Data Scientist": {"statistics", "machine learning"},
	}
	fresh := map[string][]string{
		"Data Scientist": {"statistics"},
	}
	// 候选人两次上传之间学会了 machine learning
	currentSkills := []string{"python", "data analysis", "machine learning"}
	currentRoles := []string{"Software Engineer", "Data Scientist", "Data Analyst"}

	merged := MergeMissingSkills(stored, fresh, currentSkills, currentRoles)

	assert.Equal(t, []string{"statistics"}, merged["Data Scientist"])
}

func TestMergeMissingSkillsFiltersStaleRoles(t *testing.T) {
	stored := map[string][]string{
		"Web Developer": {"react", "node.js"},
	}
	fresh := map[string][]string{}
	merged := MergeMissingSkills(stored, fresh, []string{"python"}, []string{"Software Engineer"})

	// 不在当前推荐岗位中的历史条目被过滤掉
	assert.Empty(t, merged)
}

func TestMergeMissingSkillsIdempotent(t *testing.T) {
	m := map[string][]string{
		"Data Scientist": {"statistics"},
		"Data Analyst":   {"excel", "sql"},
	}
	skills := []string{"python"}
	roles := []string{"Data Scientist", "Data Analyst"}

	once := MergeMissingSkills(m, m, skills, roles)
	twice := MergeMissingSkills(once, once, skills, roles)

	assert.Equal(t, once, twice)
}

func TestMergeMissingSkillsUnionKeepsStoredOrder(t *testing.T) {
	stored := map[string][]string{"Data Analyst": {"excel", "sql"}}
	fresh := map[string][]string{"Data Analyst": {"sql", "data visualization"}}

	merged := MergeMissingSkills(stored, fresh, nil, []string{"Data Analyst"})

	// 并集去重，先历史后新增
	assert.Equal(t, []string{"excel", "sql", "data visualization"}, merged["Data Analyst"])
}

func TestRecommendCustomCatalogOrder(t *testing.T) {
	catalog := []Role{
		{Name: "B Role", RequiredSkills: []string{"go"}},
		{Name: "A Role", RequiredSkills: []string{"go"}},
	}
	r := NewRecommenderWithCatalog(catalog)
	roles, _ := r.Recommend([]string{"go"}, 0)

	assert.Equal(t, []string{"B Role", "A Role"}, roles)
}
