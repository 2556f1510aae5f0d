package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"

	"github.com/freeboard/internal/auth"
	"github.com/freeboard/internal/models"
	"github.com/freeboard/internal/services"
	"github.com/freeboard/pkg/markdownx"
	"github.com/freeboard/pkg/utils"
)

const (
	// 订阅中的条目数量
	feedSize = 20
	// 订阅条目摘要的最大字符数
	feedSummaryLength = 200
)

// BoardHandler 封装了帖子及点赞相关的 HTTP 处理逻辑
type BoardHandler struct {
	service     services.BoardService
	siteBaseURL string
}

// NewBoardHandler 创建一个新的 BoardHandler 实例
func NewBoardHandler(service services.BoardService, siteBaseURL string) *BoardHandler {
	return &BoardHandler{service: service, siteBaseURL: strings.TrimRight(siteBaseURL, "/")}
}

// PagedBoardsData 定义了帖子列表的分页响应结构
type PagedBoardsData struct {
	Items      []models.BoardView `json:"items"`
	Pagination PaginationInfo     `json:"pagination"`
}

// SearchBoardsQuery 搜索参数
type SearchBoardsQuery struct {
	PageQuery
	Keyword    string `form:"keyword" binding:"required"`
	SearchType string `form:"searchType,default=ALL"`
}

func toPageRequest(q PageQuery) models.PageRequest {
	page, size := utils.NormalizePage(q.Page, q.Limit)
	return models.PageRequest{
		Page:      page,
		Size:      size,
		SortBy:    q.SortBy,
		SortOrder: utils.NormalizeSortOrder(q.SortOrder),
	}
}

func toPagedBoardsData(p *models.BoardPage) PagedBoardsData {
	return PagedBoardsData{
		Items: p.Items,
		Pagination: PaginationInfo{
			TotalItems:  p.TotalItems,
			TotalPages:  p.TotalPages,
			CurrentPage: p.Page + 1,
			PageSize:    p.PageSize,
		},
	}
}

// viewer 返回可选的浏览者账号，匿名请求返回 nil
func viewer(c *gin.Context) *string {
	if accountID, ok := auth.CurrentAccountID(c); ok {
		return &accountID
	}
	return nil
}

// ListBoards godoc
// @Summary 获取帖子列表
// @Description 分页获取帖子，附带点赞数；携带 Token 时标记当前用户是否已点赞
// @Tags Boards
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param sortBy query string false "排序字段 (id, title, createdAt, updatedAt)"
// @Param sortOrder query string false "排序顺序 ('asc'或'desc')" default("desc")
// @Success 200 {object} utils.SuccessResponse{data=PagedBoardsData} "成功响应，包含帖子列表和分页信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /boards [get]
func (h *BoardHandler) ListBoards(c *gin.Context) {
	var query PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), toPageRequest(query), viewer(c))
	if err != nil {
		respondServiceError(c, err, "获取帖子列表失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, toPagedBoardsData(page), "")
}

// SearchBoards godoc
// @Summary 搜索帖子
// @Description 按作者账号、标题、正文或标题+正文搜索帖子
// @Tags Boards
// @Produce json
// @Param keyword query string true "搜索关键词"
// @Param searchType query string false "搜索类型 (WRITER, TITLE, CONTENTS, ALL)" default(ALL)
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param sortBy query string false "排序字段 (id, title, createdAt, updatedAt)"
// @Param sortOrder query string false "排序顺序 ('asc'或'desc')" default("desc")
// @Success 200 {object} utils.SuccessResponse{data=PagedBoardsData} "成功响应，包含帖子列表和分页信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /boards/search [get]
func (h *BoardHandler) SearchBoards(c *gin.Context) {
	var query SearchBoardsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	searchType := models.SearchType(strings.ToUpper(query.SearchType))
	if !models.IsValidSearchType(searchType) {
		utils.RespondValidationError(c, fmt.Sprintf("不支持的搜索类型: %s", query.SearchType))
		return
	}

	page, err := h.service.Search(c.Request.Context(), toPageRequest(query.PageQuery), query.Keyword, searchType, viewer(c))
	if err != nil {
		respondServiceError(c, err, "搜索帖子失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, toPagedBoardsData(page), "")
}

// Feed godoc
// @Summary 最新帖子订阅
// @Description 以 Atom 格式返回最新发布的帖子
// @Tags Boards
// @Produce xml
// @Success 200 {string} string "Atom 订阅内容"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /boards/feed [get]
func (h *BoardHandler) Feed(c *gin.Context) {
	boards, err := h.service.Latest(c.Request.Context(), feedSize)
	if err != nil {
		respondServiceError(c, err, "生成订阅失败")
		return
	}

	feed := &feeds.Feed{
		Title:       "freeboard",
		Link:        &feeds.Link{Href: h.siteBaseURL + "/boards"},
		Description: "latest posts on freeboard",
		Updated:     time.Now(),
	}
	for _, board := range boards {
		author := ""
		if board.Writer != nil {
			author = board.Writer.AccountID
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/boards/%d", h.siteBaseURL, board.ID),
			Title:       board.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/boards/%d", h.siteBaseURL, board.ID)},
			Description: markdownx.Summary(board.Contents, feedSummaryLength),
			Author:      &feeds.Author{Name: author},
			Created:     board.CreatedAt,
			Updated:     board.UpdatedAt,
		})
	}
	atom, err := feed.ToAtom()
	if err != nil {
		respondServiceError(c, err, "生成订阅失败")
		return
	}

	// 不直接使用 c.XML() 以避免被包装 <string></string>
	c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(atom))
}

// CreateBoard godoc
// @Summary 发布帖子
// @Description 以当前登录用户为作者发布帖子，正文为 Markdown
// @Tags Boards
// @Accept json
// @Produce json
// @Param board body models.BoardForm true "帖子标题和正文"
// @Success 201 {object} utils.SuccessResponse{data=models.Board} "创建成功的帖子对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /boards [post]
// @Security BearerAuth
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var form models.BoardForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	accountID, _ := auth.CurrentAccountID(c)

	board, err := h.service.Create(c.Request.Context(), form, accountID)
	if err != nil {
		respondServiceError(c, err, "发布帖子失败")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, board, "帖子发布成功")
}

// UpdateBoard godoc
// @Summary 修改帖子
// @Description 作者本人或管理员可以修改帖子的标题和正文，作者不变
// @Tags Boards
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param board body models.BoardForm true "新的标题和正文"
// @Success 200 {object} utils.SuccessResponse "修改成功"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "无权修改"
// @Failure 404 {object} utils.APIErrorResponse "用户或帖子未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /boards/{id} [put]
// @Security BearerAuth
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	var form models.BoardForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	accountID, _ := auth.CurrentAccountID(c)

	if err := h.service.Update(c.Request.Context(), form, accountID, id); err != nil {
		respondServiceError(c, err, "修改帖子失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "帖子修改成功")
}

// DeleteBoard godoc
// @Summary 删除帖子
// @Description 作者本人或管理员可以删除帖子，帖子的点赞记录一并删除
// @Tags Boards
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "无权删除"
// @Failure 404 {object} utils.APIErrorResponse "用户或帖子未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /boards/{id} [delete]
// @Security BearerAuth
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	accountID, _ := auth.CurrentAccountID(c)

	if err := h.service.Delete(c.Request.Context(), id, accountID); err != nil {
		respondServiceError(c, err, "删除帖子失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "帖子删除成功")
}

// LikeBoard godoc
// @Summary 点赞帖子
// @Description 每个用户对同一帖子只能点赞一次
// @Tags Likes
// @Produce json
// @Param id path int true "帖子ID"
// @Success 201 {object} utils.SuccessResponse{data=models.LikeHistory} "点赞记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "用户或帖子未找到"
// @Failure 409 {object} utils.APIErrorResponse "已经点赞过"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /boards/{id}/like [post]
// @Security BearerAuth
func (h *BoardHandler) LikeBoard(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	accountID, _ := auth.CurrentAccountID(c)

	history, err := h.service.Like(c.Request.Context(), accountID, id)
	if err != nil {
		respondServiceError(c, err, "点赞失败")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, history, "点赞成功")
}

// UnlikeBoard godoc
// @Summary 取消点赞
// @Description 删除当前用户在该帖子上的点赞记录；传入 likeHistoryId 时必须与该记录一致
// @Tags Likes
// @Produce json
// @Param id path int true "帖子ID"
// @Param likeHistoryId query int false "点赞记录ID"
// @Success 200 {object} utils.SuccessResponse "取消成功"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "用户、帖子或点赞记录未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /boards/{id}/like [delete]
// @Security BearerAuth
func (h *BoardHandler) UnlikeBoard(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	likeHistoryID, err := utils.ParseOptionalID(c.Query("likeHistoryId"))
	if err != nil {
		badRequest(c, err)
		return
	}
	accountID, _ := auth.CurrentAccountID(c)

	if err := h.service.Unlike(c.Request.Context(), accountID, likeHistoryID, id); err != nil {
		respondServiceError(c, err, "取消点赞失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "已取消点赞")
}
