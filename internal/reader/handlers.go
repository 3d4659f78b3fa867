package reader

import (
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"

	apperrors "github.com/dizang-faith/dizang-faith-web/internal/errors"
	"github.com/dizang-faith/dizang-faith-web/internal/script"
	"github.com/dizang-faith/dizang-faith-web/internal/storage"
	"github.com/dizang-faith/dizang-faith-web/internal/sutra"
	"github.com/gin-gonic/gin"
)

// FallbackHeader is set when a Simplified document stands in for a missing
// Traditional one.
const FallbackHeader = "X-Sutra-Fallback"

const loadFailedMessage = "无法加载经文。请检查网络连接后重试。"

var validID = regexp.MustCompile(`^[a-z0-9-]+$`)

func (s *Server) listSutras(c *gin.Context) {
	entries, err := s.catalog(c)
	if err != nil {
		s.internalError(c, err)
		return
	}

	want := c.Query("script")
	out := make([]storage.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if want == "" || e.Script == want {
			out = append(out, e)
		}
	}
	c.JSON(http.StatusOK, gin.H{"sutras": out})
}

func (s *Server) catalog(c *gin.Context) ([]storage.CatalogEntry, error) {
	if s.store != nil {
		return s.store.ListCatalog(c.Request.Context())
	}
	return s.indexer.BuildCatalog(s.dir)
}

func (s *Server) getSutra(c *gin.Context) {
	doc, ok := s.loadRequested(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) getChapter(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter index"})
		return
	}

	doc, ok := s.loadRequested(c)
	if !ok {
		return
	}
	if idx >= len(doc.Chapters) {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      doc.ID,
		"title":   doc.Title,
		"index":   idx,
		"total":   len(doc.Chapters),
		"chapter": doc.Chapters[idx],
	})
}

// loadRequested resolves the :id and ?script parameters to a document,
// writing the error response itself when it fails.
func (s *Server) loadRequested(c *gin.Context) (*sutra.Document, bool) {
	id := c.Param("id")
	if !validID.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sutra id"})
		return nil, false
	}

	name := script.Name(c.DefaultQuery("script", string(script.Simplified)))
	if s.store != nil {
		listed, err := s.listed(c, id, name)
		if err != nil {
			s.internalError(c, err)
			return nil, false
		}
		if !listed {
			c.JSON(http.StatusNotFound, gin.H{"error": "sutra not found"})
			return nil, false
		}
	}

	doc, fallback, err := s.load(id, name)
	if apperrors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "sutra not found"})
		return nil, false
	}
	if err != nil {
		s.internalError(c, err)
		return nil, false
	}
	if fallback {
		c.Header(FallbackHeader, "true")
	}
	return doc, true
}

// listed reports whether the catalog holds id in the requested script or in
// Simplified, which a Traditional request falls back to.
func (s *Server) listed(c *gin.Context, id string, name script.Name) (bool, error) {
	for _, n := range []script.Name{name, script.Simplified} {
		_, err := s.store.GetEntry(c.Request.Context(), id, string(n))
		if err == nil {
			return true, nil
		}
		if !apperrors.IsNotFound(err) {
			return false, err
		}
	}
	return false, nil
}

// load reads a sutra in the requested script. A missing Traditional file
// falls back to the Simplified one once.
func (s *Server) load(id string, name script.Name) (*sutra.Document, bool, error) {
	if name == script.Traditional {
		doc, err := sutra.LoadFile(filepath.Join(s.dir, script.FileName(id, script.Traditional)))
		if err == nil {
			return doc, false, nil
		}
		if !apperrors.IsNotFound(err) {
			return nil, false, err
		}
		s.logger.Debug("traditional variant missing, serving simplified", "id", id)
		doc, err = sutra.LoadFile(filepath.Join(s.dir, script.FileName(id, script.Simplified)))
		return doc, err == nil, err
	}

	doc, err := sutra.LoadFile(filepath.Join(s.dir, script.FileName(id, script.Simplified)))
	return doc, false, err
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("failed to load sutra", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": loadFailedMessage})
}
