package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopbasket/lib/mycontext"
	"github.com/MarcGrol/shopbasket/lib/myerrors"
	"github.com/MarcGrol/shopbasket/lib/myhttp"
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/services/catalog"
)

// Any product will do: the lookup only opens the connection to the store
const warmupProductID = 1

type webService struct {
	logger  mylog.Logger
	catalog catalog.Catalog
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(cat catalog.Catalog) *webService {
	return &webService{
		logger:  mylog.New("warmup"),
		catalog: cat,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, _, err := s.catalog.GetProduct(c, warmupProductID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewUnavailableError(fmt.Errorf("catalog not reachable: %s", err)))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
