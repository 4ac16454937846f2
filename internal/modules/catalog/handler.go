package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 16 << 20

// Handler exposes the catalog HTTP endpoints. Statuses and message strings,
// typos included, are the contract an existing client depends on.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/count", h.count)
		r.Get("/list/{page}", h.listPage)
		r.Get("/search/{keyword}", h.search)
		r.Post("/filters", h.filter)
		r.Get("/related/{pid}/{cid}", h.related)
		r.Get("/category/{slug}", h.byCategory)
		r.Get("/photo/{id}", h.photo)
		r.Get("/{slug}", h.getBySlug)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

// parseSubmission pulls the form fields and the optional photo out of a
// multipart create/update request. Photo bytes are not read here; the
// validation pipeline checks the size first.
func parseSubmission(r *http.Request) (ProductSubmission, *PhotoUpload, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return ProductSubmission{}, nil, err
	}
	sub := ProductSubmission{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		Quantity:    r.FormValue("quantity"),
		Shipping:    r.FormValue("shipping"),
	}
	var photo *PhotoUpload
	if r.MultipartForm != nil {
		if headers := r.MultipartForm.File["photo"]; len(headers) > 0 {
			fh := headers[0]
			photo = &PhotoUpload{
				Size:        fh.Size,
				ContentType: fh.Header.Get("Content-Type"),
				Open: func() (io.ReadCloser, error) {
					return fh.Open()
				},
			}
		}
	}
	return sub, photo, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	sub, photo, err := parseSubmission(r)
	if err != nil {
		respond(w, http.StatusInternalServerError, failure("Error in crearing product", err))
		return
	}
	p, err := h.service.CreateProduct(r.Context(), sub, photo)
	var verr *ValidationError
	if errors.As(err, &verr) {
		respond(w, http.StatusInternalServerError, map[string]interface{}{"error": verr.Reason})
		return
	}
	if err != nil {
		respond(w, http.StatusInternalServerError, failure("Error in crearing product", err))
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"message":  "Product Created Successfully",
		"products": p,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, photo, err := parseSubmission(r)
	if err != nil {
		respond(w, http.StatusInternalServerError, failure("Error in Updte product", err))
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), id, sub, photo)
	var verr *ValidationError
	if errors.As(err, &verr) {
		respond(w, http.StatusInternalServerError, map[string]interface{}{"error": verr.Reason})
		return
	}
	if err != nil {
		respond(w, http.StatusInternalServerError, failure("Error in Updte product", err))
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"message":  "Product Updated Successfully",
		"products": p,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, failure("Error while deleting product", err))
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product Deleted successfully",
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, total, err := h.service.ListProducts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, failure("Erorr in getting products", err))
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"counTotal": total,
		"message":   "ALlProducts ",
		"products":  orEmpty(products),
	})
}

func (h *Handler) getBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respond(w, http.StatusInternalServerError, failure("Eror while getitng single product", err))
		return
	}
	// A slug that matched nothing is still a successful lookup.
	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Single Product Fetched",
		"product": p,
	})
}

func (h *Handler) listPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		page = 1
	}
	products, err := h.service.ListPage(r.Context(), page)
	if err != nil {
		respond(w, http.StatusBadRequest, failure("error in per page ctrl", err))
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": orEmpty(products),
	})
}

type filterRequest struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio"`
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, failure("Error WHile Filtering Products", err))
		return
	}
	products, err := h.service.Filter(r.Context(), req.Checked, req.Radio)
	if err != nil {
		respond(w, http.StatusBadRequest, failure("Error WHile Filtering Products", err))
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": orEmpty(products),
	})
}

func (h *Handler) count(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.Count(r.Context())
	if err != nil {
		respond(w, http.StatusBadRequest, failure("Error in product count", err))
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"total":   total,
	})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), chi.URLParam(r, "keyword"))
	if err != nil {
		respond(w, http.StatusBadRequest, failure("Error In Search Product API", err))
		return
	}
	// The search response is a bare array, not an envelope.
	respond(w, http.StatusOK, orEmpty(products))
}

func (h *Handler) related(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Related(r.Context(), chi.URLParam(r, "pid"), chi.URLParam(r, "cid"))
	if err != nil {
		respond(w, http.StatusBadRequest, failure("error while geting related product", err))
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": orEmpty(products),
	})
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	category, products, err := h.service.ByCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respond(w, http.StatusBadRequest, failure("Error While Getting products", err))
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"category": category,
		"products": orEmpty(products),
	})
}

func (h *Handler) photo(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.service.Photo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, failure("Erorr while getting photo", err))
		return
	}
	if len(data) == 0 {
		respond(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Photo not found",
		})
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func failure(message string, err error) map[string]interface{} {
	return map[string]interface{}{
		"success": false,
		"message": message,
		"error":   err.Error(),
	}
}

func orEmpty(products []*Product) []*Product {
	if products == nil {
		return []*Product{}
	}
	return products
}
