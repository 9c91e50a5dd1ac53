// controllers/book_controller.go
package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"library_api/app"
	"library_api/db"
	"library_api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

// ISBN：10~17 位数字/X/连字符
var isbnPattern = regexp.MustCompile(`^[0-9Xx-]{10,17}$`)

// POST /books（管理员）
func (bc *BookController) CreateBook(c *gin.Context) {
	var in struct {
		Title       string `json:"title" binding:"required,max=255"`
		Author      string `json:"author" binding:"required,max=255"`
		ISBN        string `json:"isbn" binding:"required"`
		Category    string `json:"category" binding:"omitempty,max=100"`
		TotalCopies int    `json:"totalCopies" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if !isbnPattern.MatchString(in.ISBN) {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid isbn"})
		return
	}
	if in.TotalCopies == 0 {
		in.TotalCopies = 1
	}

	b := &models.Book{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		Category:        in.Category,
		TotalCopies:     in.TotalCopies,
		AvailableCopies: in.TotalCopies,
	}
	if err := bc.Repo.CreateBook(c.Request.Context(), b); err != nil {
		if errors.Is(err, db.ErrISBNExists) {
			c.JSON(http.StatusConflict, app.H{"error": "isbn already exists"})
			return
		}
		storeError(c, err)
		return
	}

	actorID, _ := currentUserID(c)
	_, _ = bc.Repo.LogAdminAction(c.Request.Context(), actorID, currentUsername(c), "book.create", &b.ID, b.ISBN)

	c.JSON(http.StatusCreated, b)
}

// GET /books?category=&available=&q=（公开）
func (bc *BookController) ListBooks(c *gin.Context) {
	f := db.BookFilter{
		Category: c.Query("category"),
		Q:        c.Query("q"),
	}
	if v := c.Query("available"); v != "" {
		avail, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid available flag"})
			return
		}
		f.OnlyAvailable = avail
	}

	books, err := bc.Repo.ListBooks(c.Request.Context(), f)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// DELETE /books/:id（管理员）
func (bc *BookController) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid book id"})
		return
	}

	if err := bc.Repo.DeleteBook(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, db.ErrBookNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "book not found"})
		case errors.Is(err, db.ErrBookHasActiveLoans):
			c.JSON(http.StatusConflict, app.H{"error": "book has active loans"})
		default:
			storeError(c, err)
		}
		return
	}

	actorID, _ := currentUserID(c)
	_, _ = bc.Repo.LogAdminAction(c.Request.Context(), actorID, currentUsername(c), "book.delete", &id, "")

	c.Status(http.StatusNoContent)
}

// GET /api/books?q=&status=&page=&size=（管理员：含在借数量）
func (bc *BookController) ListBooksAdmin(c *gin.Context) {
	q := db.AdminBooksQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"), // "", "available", "exhausted"
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := bc.Repo.ListBooksWithActiveCounts(c.Request.Context(), q)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
