package repositories

import (
	"strings"

	"gorm.io/gorm"

	"github.com/freeboard/internal/models"
)

// BoardSpec 是一个可组合的帖子查询条件，nil 表示不加任何条件
type BoardSpec struct {
	clause string
	args   []interface{}
}

// likeEscaper 转义 LIKE 通配符，配合 ESCAPE '!' 使用（sqlite 与 mysql 均支持）
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containing(column, keyword string) *BoardSpec {
	return &BoardSpec{
		clause: column + " LIKE ? ESCAPE '!'",
		args:   []interface{}{"%" + likeEscaper.Replace(keyword) + "%"},
	}
}

// HasTitle 标题包含 keyword，仅在按标题或全部字段搜索时生效
func HasTitle(keyword string, searchType models.SearchType) *BoardSpec {
	if searchType != models.SearchTypeTitle && searchType != models.SearchTypeAll {
		return nil
	}
	return containing("boards.title", keyword)
}

// HasContents 正文包含 keyword，仅在按正文或全部字段搜索时生效
func HasContents(keyword string, searchType models.SearchType) *BoardSpec {
	if searchType != models.SearchTypeContents && searchType != models.SearchTypeAll {
		return nil
	}
	return containing("boards.contents", keyword)
}

// Or 组合为 (s OR other)，任一侧为 nil 时返回另一侧
func (s *BoardSpec) Or(other *BoardSpec) *BoardSpec {
	return s.combine("OR", other)
}

// And 组合为 (s AND other)，任一侧为 nil 时返回另一侧
func (s *BoardSpec) And(other *BoardSpec) *BoardSpec {
	return s.combine("AND", other)
}

func (s *BoardSpec) combine(op string, other *BoardSpec) *BoardSpec {
	if s == nil {
		return other
	}
	if other == nil {
		return s
	}
	args := make([]interface{}, 0, len(s.args)+len(other.args))
	args = append(append(args, s.args...), other.args...)
	return &BoardSpec{
		clause: "(" + s.clause + ") " + op + " (" + other.clause + ")",
		args:   args,
	}
}

// String 返回条件 SQL 片段，便于调试和测试
func (s *BoardSpec) String() string {
	if s == nil {
		return ""
	}
	return s.clause
}

func (s *BoardSpec) apply(tx *gorm.DB) *gorm.DB {
	if s == nil {
		return tx
	}
	return tx.Where(s.clause, s.args...)
}
