package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ResumeRecord 候选人简历记录表。
// 自然去重键为 (email, phone)：同一候选人重复上传时原地更新评估字段，
// 身份字段不动；库容量有上限，超出时淘汰最早上传的记录。
type ResumeRecord struct {
	ID               uint64         `gorm:"primaryKey;autoIncrement"`
	Name             string         `gorm:"type:varchar(255)"`
	Email            string         `gorm:"type:varchar(255);index:idx_resumes_email_phone,priority:1"`
	Phone            string         `gorm:"type:varchar(50);index:idx_resumes_email_phone,priority:2"`
	Education        string         `gorm:"type:varchar(100)"` // 学历关键词或 "Unknown"
	Experience       int            `gorm:"not null;default:0"`
	Skills           string         `gorm:"type:text"` // 排序后逗号连接的小写技能串
	FilePathOSS      string         `gorm:"type:varchar(1024)"` // 原始PDF的归档对象键，可为空
	UploadedAt       time.Time      `gorm:"type:datetime(6);index:idx_resumes_uploaded_at"`
	RankingScore     *float64       `gorm:"type:double;index:idx_resumes_ranking_score"` // 评分前为NULL
	RecommendedRoles string         `gorm:"type:varchar(512)"` // 逗号连接的推荐岗位
	Sentiment        string         `gorm:"type:varchar(20);default:'Neutral'"`
	MissingSkills    datatypes.JSON `gorm:"type:json"` // 岗位名 -> 缺失技能列表
	CreatedAt        time.Time      `gorm:"type:datetime(6)"`
	UpdatedAt        time.Time      `gorm:"type:datetime(6);autoUpdateTime"`
}

func (ResumeRecord) TableName() string {
	return "resume_records"
}

// MissingSkillsMap 反序列化缺失技能映射，空值返回空map
func (r *ResumeRecord) MissingSkillsMap() map[string][]string {
	result := make(map[string][]string)
	if len(r.MissingSkills) == 0 {
		return result
	}
	if err := json.Unmarshal(r.MissingSkills, &result); err != nil {
		return make(map[string][]string)
	}
	return result
}

// MissingSkillsToJSON 序列化缺失技能映射为JSON列值
func MissingSkillsToJSON(m map[string][]string) (datatypes.JSON, error) {
	if m == nil {
		m = map[string][]string{}
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}
