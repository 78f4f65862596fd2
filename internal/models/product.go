package models

import (
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/constants"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                           // 主键
	CategoryID      uint      `gorm:"not null;index" json:"category_id"`                              // 分类ID
	SubCategoryID   uint      `gorm:"not null;index" json:"subcategory_id"`                           // 子分类ID
	Name            string    `gorm:"type:varchar(200);not null" json:"name"`                         // 商品名称
	Slug            string    `gorm:"type:varchar(250);uniqueIndex;not null" json:"slug"`             // 唯一标识
	Description     string    `gorm:"type:text" json:"description"`                                   // 商品描述（HTML）
	Price           Money     `gorm:"type:decimal(10,2);not null;default:0" json:"price"`             // 价格
	SpecsJSON       JSON      `gorm:"type:json" json:"specs"`                                         // 规格参数
	Stock           int       `gorm:"not null;default:0" json:"stock"`                                // 库存
	Status          string    `gorm:"type:varchar(10);not null;default:'active';index" json:"status"` // 状态（active/inactive）
	IsBestSeller    bool      `gorm:"not null;default:false;index" json:"is_best_seller"`             // 是否热销
	IsFeatured      bool      `gorm:"not null;default:false;index" json:"is_featured"`                // 是否推荐
	IsOnSale        bool      `gorm:"not null;default:false;index" json:"is_on_sale"`                 // 是否促销
	DiscountedPrice *Money    `gorm:"type:decimal(10,2)" json:"discounted_price"`                     // 促销价
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                                     // 更新时间

	// 关联
	Category    *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`       // 分类信息
	SubCategory *SubCategory     `gorm:"foreignKey:SubCategoryID" json:"subcategory,omitempty"` // 子分类信息
	Images      []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`          // 图片
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`        // 规格
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeSave 规范化促销价与促销标记
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.NormalizeSale()
	return nil
}

// NormalizeSale 促销价不低于原价时清空促销价，促销标记随促销价变化
func (p *Product) NormalizeSale() {
	if p.DiscountedPrice != nil && p.DiscountedPrice.IsZero() {
		p.DiscountedPrice = nil
	}
	switch {
	case p.DiscountedPrice != nil && p.DiscountedPrice.GreaterThanOrEqual(p.Price.Decimal):
		p.DiscountedPrice = nil
		p.IsOnSale = false
	case p.DiscountedPrice != nil:
		p.IsOnSale = true
	default:
		p.IsOnSale = false
	}
}

// IsActive 是否上架
func (p Product) IsActive() bool {
	return p.Status == constants.ProductStatusActive
}

// DiscountPercentage 折扣百分比（四舍五入到整数），未促销时返回 nil
func (p Product) DiscountPercentage() *int64 {
	if !p.IsOnSale || p.DiscountedPrice == nil || !p.Price.IsPositive() {
		return nil
	}
	percent := p.Price.Sub(p.DiscountedPrice.Decimal).
		Div(p.Price.Decimal).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	return &percent
}

// PrimaryImageURL 主图地址，没有主图时取第一张
func (p Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.Image
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].Image
	}
	return ""
}

// ProductImage 商品图片表
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`                     // 主键
	ProductID uint      `gorm:"not null;index" json:"product_id"`         // 商品ID
	Image     string    `gorm:"type:varchar(500);not null" json:"image"`  // 图片路径
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"` // 是否主图
	SortOrder int       `gorm:"column:sort_order;default:0" json:"order"` // 排序
	CreatedAt time.Time `json:"created_at"`                               // 创建时间
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}

// ProductVariant 商品规格表
type ProductVariant struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                                                    // 主键
	ProductID       uint      `gorm:"not null;uniqueIndex:idx_variant_product_type_name" json:"product_id"`                    // 商品ID
	VariantType     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_variant_product_type_name" json:"variant_type"` // 规格类型（color/storage/size）
	Name            string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_variant_product_type_name" json:"name"`        // 规格值
	SKU             string    `gorm:"type:varchar(100)" json:"sku"`                                                            // 库存编码
	Stock           int       `gorm:"not null;default:0" json:"stock"`                                                         // 库存
	PriceAdjustment Money     `gorm:"type:decimal(10,2);not null;default:0" json:"price_adjustment"`                           // 价格调整
	IsDefault       bool      `gorm:"not null;default:false" json:"is_default"`                                                // 是否默认选项
	CreatedAt       time.Time `json:"created_at"`                                                                              // 创建时间
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

// FinalPrice 规格最终价格
func (v ProductVariant) FinalPrice(base Money) Money {
	return NewMoneyFromDecimal(base.Add(v.PriceAdjustment.Decimal))
}

// VariantTypeDisplay 规格类型展示名
func (v ProductVariant) VariantTypeDisplay() string {
	if display, ok := constants.VariantTypeDisplay[v.VariantType]; ok {
		return display
	}
	return v.VariantType
}
