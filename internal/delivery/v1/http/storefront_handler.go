package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type StorefrontHandler struct {
	storefrontUsecase usecase.StorefrontUC
	views             *Views
	logger            logger.Logger
}

func NewStorefrontHandler(storefrontUsecase usecase.StorefrontUC, views *Views, logger logger.Logger) *StorefrontHandler {
	return &StorefrontHandler{storefrontUsecase: storefrontUsecase, views: views, logger: logger}
}

func (s *StorefrontHandler) redirectToGrid(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/products", http.StatusFound)
}

// showGrid отрисовывает сетку товаров. Ошибка хранилища даёт пустую сетку с сообщением, а не 5xx.
func (s *StorefrontHandler) showGrid(w http.ResponseWriter, r *http.Request) {
	page := s.storefrontUsecase.ShowGrid(r.Context())
	s.render(w, http.StatusOK, "grid.html", page)
}

func (s *StorefrontHandler) showProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := s.storefrontUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.render(w, http.StatusOK, "product.html", detail)
}

// addToCart передаёт товар в корзину и перенаправляет на страницу товара.
func (s *StorefrontHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	path, err := s.storefrontUsecase.AddToCart(r.Context(), cartID(w, r), id)
	if err != nil {
		s.renderError(w, err)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает карточки товаров витрины. При недоступности хранилища список пуст, degraded=true
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	ProductListResponse
//	@Router			/products [get]
func (s *StorefrontHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	page := s.storefrontUsecase.ShowGrid(r.Context())
	WriteSuccess(w, http.StatusOK, toListResponse(page))
}

// getProduct
//
//	@Summary		Товар по ID
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"ID товара"
//	@Success		200	{object}	ProductDetailResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/products/{id} [get]
func (s *StorefrontHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := s.storefrontUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Warnf("get product: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toDetailResponse(detail))
}

func (s *StorefrontHandler) render(w http.ResponseWriter, status int, page string, data any) {
	if err := s.views.Render(w, status, page, data); err != nil {
		s.logger.Errorf(err, "failed to render %s", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *StorefrontHandler) renderError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		s.logger.Errorf(err, "storefront request failed")
	} else {
		s.logger.Warnf("%d %s: %v", code, msg, err)
	}

	s.render(w, code, "error.html", NewErrorResponse(code, msg))
}
