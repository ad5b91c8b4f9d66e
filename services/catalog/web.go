package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopbasket/lib/mycontext"
	"github.com/MarcGrol/shopbasket/lib/myerrors"
	"github.com/MarcGrol/shopbasket/lib/myhttp"
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mystore"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewService(store mystore.Store[Product]) *webService {
	logger := mylog.New("catalog")
	return &webService{
		service: newService(store, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/catalog/product", s.listProducts()).Methods("GET")
	router.HandleFunc("/api/catalog/product/{id:[0-9]+}", s.getProduct()).Methods("GET")
}

// Catalog exposes the lookups the basket needs
func (s *webService) Catalog() Catalog {
	return s.service
}

func (s *webService) Seed(c context.Context) error {
	return s.service.Seed(c)
}

func (s *webService) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.service.listProducts(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) getProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		product, err := s.service.getProduct(c, productID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}
