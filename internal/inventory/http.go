package inventory

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"Inventario/pkg/kit"
)

const (
	maxFormBytes  = 64 << 10
	readyTimeout  = 1 * time.Second
	inventoryPath = "/inventario"

	inventoryTitle  = "Inventario"
	newProductTitle = "Nuevo producto"
)

type Server struct {
	Store    Store
	Renderer Renderer
	Log      *zap.Logger
	Metrics  *Metrics

	// Rand feeds the /test_stream snippet. Defaults to math/rand.
	Rand func() int
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, inventoryPath, http.StatusMovedPermanently)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.storeError(w, r, "list products failed", err)
		return
	}
	s.render(w, r, "index.html", map[string]any{
		"title":    inventoryTitle,
		"products": products,
	})
}

func (s *Server) handleNewProduct(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "new_product.html", map[string]any{
		"title": newProductTitle,
	})
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	name, price, err := decodeProductForm(w, r)
	if err != nil {
		s.logger().Debug("bad product form", zap.Error(err))
		kit.WriteError(w, r, http.StatusBadRequest, "bad form")
		return
	}

	p, err := s.Store.Add(r.Context(), name, price)
	if err != nil {
		s.storeError(w, r, "add product failed", err)
		return
	}
	s.Metrics.productAdded()
	s.logger().Info("product added",
		zap.Uint8("id", p.ID),
		zap.String("name", p.Name),
		zap.Float64("price", p.Price),
	)

	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.storeError(w, r, "list products failed", err)
		return
	}
	kit.WriteHTML(w, http.StatusOK, productListFragment(products))
}

func (s *Server) handleTestStream(w http.ResponseWriter, _ *http.Request) {
	n := rand.IntN(1000)
	if s.Rand != nil {
		n = s.Rand()
	}
	kit.WriteHTML(w, http.StatusOK, fmt.Sprintf("<p>Random number: %d</p>", n))
}

func (s *Server) handleTestPost(w http.ResponseWriter, _ *http.Request) {
	kit.WriteHTML(w, http.StatusOK, "<h1>Test Post</h1>")
}

func (s *Server) handleClicked(w http.ResponseWriter, _ *http.Request) {
	kit.WriteHTML(w, http.StatusOK, "<h1>Clicked</h1>")
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	page, err := s.Renderer.Render(name, data)
	if err != nil {
		s.logger().Error("render template failed", zap.String("template", name), zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "Template error: "+err.Error())
		return
	}
	kit.WriteHTML(w, http.StatusOK, page)
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger().Error(msg, zap.Error(err))
	kit.WriteError(w, r, http.StatusInternalServerError, "Store error")
}

// decodeProductForm only coerces types: price must parse to a finite float,
// otherwise the content of name and price is taken as submitted.
func decodeProductForm(w http.ResponseWriter, r *http.Request) (string, float64, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return "", 0, err
	}
	if !r.PostForm.Has("name") {
		return "", 0, fmt.Errorf("missing field name")
	}
	if !r.PostForm.Has("price") {
		return "", 0, fmt.Errorf("missing field price")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(r.PostForm.Get("price")), 64)
	if err != nil {
		return "", 0, fmt.Errorf("parse price: %w", err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "", 0, fmt.Errorf("price %v is not a finite number", price)
	}
	return r.PostForm.Get("name"), price, nil
}
