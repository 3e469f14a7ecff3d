package model

import "time"

type Protein struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// protein_cuts中間テーブル（価格付き）
type ProteinCut struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ProteinID int64     `gorm:"not null;index"`
	CutID     int64     `gorm:"not null;index"`
	Price     float64   `gorm:"type:decimal(10,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// protein_flavours中間テーブル（価格付き）
type ProteinFlavour struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ProteinID int64     `gorm:"not null;index"`
	FlavourID int64     `gorm:"not null;index"`
	Price     float64   `gorm:"type:decimal(10,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JOIN結果の読み取り用
type PricedCut struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type PricedFlavour struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
