package basket

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopbasket/lib/mycontext"
	"github.com/MarcGrol/shopbasket/lib/myerrors"
	"github.com/MarcGrol/shopbasket/lib/myhttp"
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mypublisher"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/lib/mytime"
	"github.com/MarcGrol/shopbasket/lib/myuuid"
	"github.com/MarcGrol/shopbasket/services/catalog"
)

const getItemRouteName = "api_basket_get"

type webService struct {
	service *service
	router  *mux.Router
	logger  mylog.Logger
}

func NewService(store mystore.Store[Basket], cat catalog.Catalog, pub mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, siteID string) *webService {
	logger := mylog.New("basket")
	return &webService{
		service: newService(store, cat, pub, nower, uuider, logger, siteID),
		logger:  logger,
	}
}

// Mutating routes have no CSRF protection: add authorization before exposing them publicly
func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	s.router = router

	router.HandleFunc("/api/basket", s.listPage()).Methods("GET")
	router.HandleFunc("/api/basket", s.addPage()).Methods("POST")

	subRouter := router.PathPrefix("/api/basket").Subrouter()
	subRouter.HandleFunc("/", s.listPage()).Methods("GET").Name("api_basket_list")
	subRouter.HandleFunc("/", s.addPage()).Methods("POST").Name("api_basket_add")
	subRouter.HandleFunc("/{id:[0-9]+}/", s.getPage()).Methods("GET").Name(getItemRouteName)
	subRouter.HandleFunc("/{id:[0-9]+}/", s.updatePage()).Methods("POST").Name("api_basket_update")
	subRouter.HandleFunc("/delete/{id:[0-9]+}/", s.deletePage()).Methods("POST").Name("api_basket_delete")

	return s.service.CreateTopics(c)
}

type addItemForm struct {
	ProductID int               `form:"productId"`
	Quantity  float64           `form:"quantity"`
	Props     map[string]string `form:"props"`
}

func (s *webService) listPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		fuserUID := resolveFuser(w, r, s.service.uuider)

		items, err := s.service.listItems(c, fuserUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, toItemViews(items))
	}
}

func (s *webService) addPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		fuserUID := resolveFuser(w, r, s.service.uuider)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		form := addItemForm{}
		err = formcodec.NewDecoder().Decode(&form, r.PostForm)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err)))
			return
		}

		item, err := s.service.addItem(c, fuserUID, form.ProductID, form.Quantity, form.Props)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		link, err := s.itemLink(item.ID)
		if err != nil {
			errorWriter.WriteError(c, w, 4, myerrors.NewInternalError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, createdResponse{
			ID:   item.ID,
			Link: link,
		})
	}
}

func (s *webService) getPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		fuserUID := resolveFuser(w, r, s.service.uuider)

		itemID, err := itemIDFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		item, err := s.service.getItem(c, fuserUID, itemID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, toItemView(item))
	}
}

func (s *webService) updatePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		fuserUID := resolveFuser(w, r, s.service.uuider)

		itemID, err := itemIDFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		item, err := s.service.updateItem(c, fuserUID, itemID, r.PostForm)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, toItemView(item))
	}
}

func (s *webService) deletePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		fuserUID := resolveFuser(w, r, s.service.uuider)

		itemID, err := itemIDFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.deleteItem(c, fuserUID, itemID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.WriteEmpty(c, w, http.StatusNoContent)
	}
}

func (s *webService) itemLink(itemID int) (string, error) {
	route := s.router.Get(getItemRouteName)
	if route == nil {
		return "", fmt.Errorf("route %s not registered", getItemRouteName)
	}
	u, err := route.URL("id", strconv.Itoa(itemID))
	if err != nil {
		return "", fmt.Errorf("error composing link for item %d: %s", itemID, err)
	}
	return u.String(), nil
}

func itemIDFromRequest(r *http.Request) (int, error) {
	itemID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, myerrors.NewInvalidInputError(fmt.Errorf("invalid item id: %s", err))
	}
	return itemID, nil
}
