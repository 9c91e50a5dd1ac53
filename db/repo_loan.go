package db

import (
	"context"
	"errors"
	"time"

	"library_api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrNoCopiesAvailable = errors.New("no available copies")
	ErrAlreadyBorrowed   = errors.New("user already borrowed this book")
	ErrAlreadyReturned   = errors.New("loan already returned")
	ErrNotLoanOwner      = errors.New("not the loan owner")
)

// 借书：原子操作 = 锁住书行 → 校验库存与重复借阅 → 扣减 available → 新建 loan。
// FOR UPDATE 串行化同一本书的并发借阅：最后一本只有一个赢家，其余看到库存为 0。
func (r *Repo) BorrowBook(ctx context.Context, userID, bookID string) (*models.Loan, error) {
	var loan *models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) 锁住这本书
		var b models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		// 2) 库存校验
		if b.AvailableCopies <= 0 {
			return ErrNoCopiesAvailable
		}
		// 3) 同一用户同一本书最多一条在借
		var n int64
		if err := tx.Model(&models.Loan{}).
			Where("user_id = ? AND book_id = ? AND returned_at IS NULL", userID, bookID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyBorrowed
		}
		// 4) 扣减库存（持锁，表达式自增避免覆盖）
		if err := tx.Model(&models.Book{}).
			Where("id = ?", b.ID).
			Update("available_copies", gorm.Expr("available_copies - 1")).Error; err != nil {
			return err
		}
		// 5) 新建 Loan（唯一部分索引兜底重复在借）
		l := &models.Loan{
			ID:         uuid.NewString(),
			BookID:     b.ID,
			UserID:     userID,
			BorrowedAt: time.Now().UTC(),
		}
		if err := tx.Create(l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyBorrowed
			}
			return err
		}
		loan = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// 归还：原子操作 = 锁住 loan 与书行 → 置 returned_at → 回补 available。
// 已归还的 loan 不可再归还；归还人必须是借阅人或管理员。
func (r *Repo) ReturnLoan(ctx context.Context, loanID, callerID string, callerIsAdmin bool) (*models.Loan, error) {
	var l models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&l, "id = ?", loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLoanNotFound
			}
			return err
		}
		if l.UserID != callerID && !callerIsAdmin {
			return ErrNotLoanOwner
		}
		if l.ReturnedAt != nil {
			return ErrAlreadyReturned
		}

		// 锁书行，和借书用同一把锁
		var b models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", l.BookID).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		l.ReturnedAt = &now
		if err := tx.Save(&l).Error; err != nil {
			return err
		}
		return tx.Model(&models.Book{}).
			Where("id = ?", b.ID).
			Update("available_copies", gorm.Expr("available_copies + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// 借阅记录（含已归还），最近的在前
func (r *Repo) ListLoansForUser(ctx context.Context, userID string) ([]models.Loan, error) {
	var ls []models.Loan
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("borrowed_at DESC, id DESC").
		Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}

func (r *Repo) CountActiveLoansForBook(ctx context.Context, bookID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Loan{}).
		Where("book_id = ? AND returned_at IS NULL", bookID).
		Count(&n).Error
	return n, err
}
