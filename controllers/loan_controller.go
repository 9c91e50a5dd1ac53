// controllers/loan_controller.go
package controllers

import (
	"errors"
	"net/http"

	"library_api/app"
	"library_api/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// POST /loans {bookId}
func (lc *LoanController) Borrow(c *gin.Context) {
	var in struct {
		BookID string `json:"bookId" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	loan, err := lc.Repo.BorrowBook(c.Request.Context(), uid, in.BookID)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrBookNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "book not found"})
		case errors.Is(err, db.ErrNoCopiesAvailable):
			c.JSON(http.StatusConflict, app.H{"error": "no available copies"})
		case errors.Is(err, db.ErrAlreadyBorrowed):
			c.JSON(http.StatusConflict, app.H{"error": "already borrowed"})
		default:
			storeError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// POST /loans/:id/return
func (lc *LoanController) Return(c *gin.Context) {
	loanID := c.Param("id")
	if _, err := uuid.Parse(loanID); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid loan id"})
		return
	}
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	loan, err := lc.Repo.ReturnLoan(c.Request.Context(), loanID, uid, isAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, db.ErrLoanNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "loan not found"})
		case errors.Is(err, db.ErrNotLoanOwner):
			c.JSON(http.StatusForbidden, app.H{"error": "not your loan"})
		case errors.Is(err, db.ErrAlreadyReturned):
			c.JSON(http.StatusConflict, app.H{"error": "already returned"})
		default:
			storeError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, loan)
}
