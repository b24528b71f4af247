package repository

import "gorm.io/gorm"

// paginate applies offset/limit pagination. Page numbers start at 1;
// a non-positive page size disables pagination.
func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page <= 0 {
		page = 1
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
