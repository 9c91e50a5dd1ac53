// models/book_loan.go
package models

import "time"

const BookTable = "lib_books"
const LoanTable = "lib_loans"

type Book struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string `gorm:"size:255;not null;index" json:"title"`
	Author   string `gorm:"size:255;not null;index" json:"author"`
	ISBN     string `gorm:"size:32;uniqueIndex;not null" json:"isbn"`
	Category string `gorm:"size:100;index" json:"category,omitempty"`

	// 不变量：0 <= available_copies <= total_copies，
	// available_copies = total_copies - 未归还 Loan 数
	TotalCopies     int `gorm:"not null;default:1" json:"totalCopies"`
	AvailableCopies int `gorm:"not null;default:1" json:"availableCopies"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Loan struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	BookID string `gorm:"type:uuid;index;not null" json:"bookId"`
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`

	BorrowedAt time.Time  `gorm:"index;not null" json:"borrowedAt"`
	ReturnedAt *time.Time `gorm:"index" json:"returnedAt,omitempty"` // nil = 未归还

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }
func (Loan) TableName() string { return LoanTable }

// Active reports whether the loan is still open.
func (l *Loan) Active() bool { return l.ReturnedAt == nil }
