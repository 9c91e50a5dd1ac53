package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"library_api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrISBNExists         = errors.New("isbn already exists")
	ErrBookHasActiveLoans = errors.New("book has active loans")
)

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("isbn = ?", b.ISBN).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrISBNExists
	}
	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrISBNExists
		}
		return err
	}
	return nil
}

func (r *Repo) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

type BookFilter struct {
	Category      string
	OnlyAvailable bool
	Q             string // 标题/作者模糊匹配
}

func (r *Repo) ListBooks(ctx context.Context, f BookFilter) ([]models.Book, error) {
	q := r.DB.WithContext(ctx).Model(&models.Book{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.OnlyAvailable {
		q = q.Where("available_copies > 0")
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", like, like)
	}
	var books []models.Book
	// 按入库顺序稳定排序
	if err := q.Order("created_at ASC, id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// 删除：锁住书行，未归还 Loan 存在则拒绝。
// 与借书走同一把行锁，校验和删除之间不会插入新借阅。
func (r *Repo) DeleteBook(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		var n int64
		if err := tx.Model(&models.Loan{}).
			Where("book_id = ? AND returned_at IS NULL", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrBookHasActiveLoans
		}
		return tx.Delete(&models.Book{}, "id = ?", id).Error
	})
}

// 管理视图：书 + 在借数量

type AdminBookRow struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	Category        string    `json:"category,omitempty"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`
	ActiveLoans     int64     `json:"activeLoans"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type AdminBooksQuery struct {
	Q      string // 模糊搜索：title/author/isbn
	Status string // "", "available", "exhausted"
	Page   int
	Size   int
}

type PagedAdminBooks struct {
	Total int64          `json:"total"`
	Books []AdminBookRow `json:"books"`
}

func (r *Repo) ListBooksWithActiveCounts(ctx context.Context, q AdminBooksQuery) (*PagedAdminBooks, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 20
	}
	offset := (q.Page - 1) * q.Size

	db := r.DB.WithContext(ctx)

	// 过滤条件只涉及书表，计数和明细各自建查询
	filters := func(tx *gorm.DB) *gorm.DB {
		if s := strings.TrimSpace(q.Q); s != "" {
			pat := "%" + strings.ToLower(s) + "%"
			tx = tx.Where("LOWER(b.title) LIKE ? OR LOWER(b.author) LIKE ? OR LOWER(b.isbn) LIKE ?", pat, pat, pat)
		}
		switch q.Status {
		case "available":
			tx = tx.Where("b.available_copies > 0")
		case "exhausted":
			tx = tx.Where("b.available_copies = 0")
		default:
			// all
		}
		return tx
	}

	var total int64
	if err := filters(db.Table(models.BookTable + " b")).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []AdminBookRow
	if err := filters(db.Table(models.BookTable+" b").
		Joins("LEFT JOIN "+models.LoanTable+" l ON l.book_id = b.id AND l.returned_at IS NULL")).
		Select(`
			b.id, b.title, b.author, b.isbn, b.category,
			b.total_copies, b.available_copies, b.created_at, b.updated_at,
			COUNT(l.id) AS active_loans
		`).
		Group("b.id").
		Order("b.created_at ASC, b.id ASC").
		Offset(offset).Limit(q.Size).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return &PagedAdminBooks{Total: total, Books: rows}, nil
}
