package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page            int
	PageSize        int
	CategorySlug    string
	SubCategorySlug string
	Search          string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	Featured        bool
	BestSeller      bool
	OnSale          bool
	OnlyActive      bool
	WithRelations   bool
}

// SubCategoryListFilter 查询子分类列表的过滤条件
type SubCategoryListFilter struct {
	CategorySlug string
	CategoryID   uint
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page        int
	PageSize    int
	ProductID   uint
	UserID      uint
	IsApproved  *bool
	OrderNewest bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNumber string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	IsActive    *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserLoginLogListFilter 查询登录日志列表的过滤条件
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	FailReason  string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
