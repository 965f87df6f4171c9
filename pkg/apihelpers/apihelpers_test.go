package apihelpers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParsePaginatedQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parse := func(query string) (*PaginatedQuery, error) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/items"+query, nil)
		return ParsePaginatedQueryFromCtx(c)
	}

	t.Run("defaults", func(t *testing.T) {
		q, err := parse("")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if q.Page != 1 || q.Limit != 20 {
			t.Errorf("unexpected query: %+v", q)
		}
	})

	t.Run("limit capped", func(t *testing.T) {
		q, err := parse("?page=2&limit=1000")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if q.Limit != MAX_PAGE_SIZE || q.Offset() != MAX_PAGE_SIZE {
			t.Errorf("unexpected query: %+v", q)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := parse("?page=abc"); err == nil {
			t.Error("expected error")
		}
		if _, err := parse("?page=0"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := Paginate(items, PaginatedQuery{Page: 2, Limit: 2}); len(got) != 2 || got[0] != 3 {
		t.Errorf("unexpected page: %v", got)
	}
	if got := Paginate(items, PaginatedQuery{Page: 3, Limit: 2}); len(got) != 1 || got[0] != 5 {
		t.Errorf("unexpected page: %v", got)
	}
	if got := Paginate(items, PaginatedQuery{Page: 4, Limit: 2}); len(got) != 0 {
		t.Errorf("unexpected page: %v", got)
	}
}

func TestWriteRoutesToFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/b", func(c *gin.Context) {})
	router.GET("/b", func(c *gin.Context) {})
	router.GET("/a", func(c *gin.Context) {})

	filename := filepath.Join(t.TempDir(), "routes.txt")
	if err := WriteRoutesToFile(router, filename); err != nil {
		t.Errorf("unexpected error: %v", err)
		return
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
		return
	}
	expected := "GET\t/a\nGET\t/b\nPOST\t/b\n"
	if string(content) != expected {
		t.Errorf("unexpected content: %q", string(content))
	}
}
