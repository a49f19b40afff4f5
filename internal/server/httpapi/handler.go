package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type bookRequest struct {
	Title  string `json:"title" form:"title"`
	Author string `json:"author" form:"author"`
}

func (s *HTTPServer) health(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn(c.Request.Context(), "health check failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", user.UserName)
	c.JSON(http.StatusOK, user)
}

// login takes an OAuth2 password-flow form: username and password fields.
func (s *HTTPServer) login(c *gin.Context) {
	username, okUser := c.GetPostForm("username")
	password, okPass := c.GetPostForm("password")
	if !okUser || !okPass {
		s.badRequest(c, "username and password form fields are required")
		return
	}

	token, err := s.users.Login(c.Request.Context(), username, password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *HTTPServer) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *HTTPServer) createBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	book, err := s.books.Create(c.Request.Context(), currentUser(c), req.Title, req.Author)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *HTTPServer) listBooks(c *gin.Context) {
	list, err := s.books.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// updateBook accepts title and author either as a JSON body or as
// query/form parameters.
func (s *HTTPServer) updateBook(c *gin.Context) {
	id, ok := s.bookID(c)
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBind(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	book, err := s.books.Update(c.Request.Context(), currentUser(c), id, req.Title, req.Author)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *HTTPServer) deleteBook(c *gin.Context) {
	id, ok := s.bookID(c)
	if !ok {
		return
	}

	if err := s.books.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "book deleted"})
}

func (s *HTTPServer) bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.badRequest(c, "book id must be a positive integer")
		return 0, false
	}
	return id, true
}
