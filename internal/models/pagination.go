package models

// PageRequest 分页及排序参数，Page 从 0 开始
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	SortOrder string
}

// Offset ...
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// TotalPages 根据总数计算页数
func TotalPages(totalItems int64, size int) int64 {
	if size <= 0 {
		return 0
	}
	return (totalItems + int64(size) - 1) / int64(size)
}
