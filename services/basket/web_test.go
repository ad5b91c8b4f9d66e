package basket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shopbasket/lib/mypublisher"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/lib/mytime"
	"github.com/MarcGrol/shopbasket/lib/myuuid"
	"github.com/MarcGrol/shopbasket/services/basket/basketevents"
	"github.com/MarcGrol/shopbasket/services/catalog"
)

const (
	fuserA = "0b3b3a0e-2c5f-4aa4-9a53-6c1f1b0f0a01"
	fuserB = "6f7a52e1-95a4-4b9a-8c51-3de4b1c7e802"
	siteID = "s1"
)

var (
	tennisBalls = catalog.Product{ID: 7, Name: "Tennis balls", BasePrice: 10.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 5, Measure: "pcs", Active: true}
	sportsDrink = catalog.Product{ID: 14, Name: "Sports drink", BasePrice: 1.50, Currency: "EUR", VATRate: 9, VATIncluded: false, Ratio: 1, Measure: "l", Active: true}
	squash      = catalog.Product{ID: 15, Name: "Squash racket", BasePrice: 99.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Active: false}

	basketA = Basket{
		UID:        composeBasketUID(fuserA, siteID),
		FuserUID:   fuserA,
		SiteID:     siteID,
		NextItemID: 2,
		Items: []BasketItem{
			{ID: 1, ProductID: 7, Name: "Tennis balls", Price: 10.00, VATRate: 21, VATIncluded: true, Quantity: 5, Currency: "EUR"},
			{ID: 2, ProductID: 14, Name: "Sports drink", Price: 1.50, VATRate: 9, Quantity: 2, Currency: "EUR", Props: []Property{{Code: "flavour", Name: "flavour", Value: "lemon"}}},
		},
		CreatedAt: mytime.ExampleTime,
	}
)

func TestBasketService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("List empty basket", func(t *testing.T) {
		// given
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket/", fuserA, nil)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `[]`, response.Body.String())
	})

	t.Run("List without cookie issues visitor identity", func(t *testing.T) {
		// given
		_, router, _, _, uuider := setup(t, ctrl)
		uuider.EXPECT().Create().Return(fuserB)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket", "", nil)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		cookies := response.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, fuserCookieName, cookies[0].Name)
		assert.Equal(t, fuserB, cookies[0].Value)
	})

	t.Run("List basket", func(t *testing.T) {
		// given
		c, router, store, _, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket/", fuserA, nil)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		views := []itemView{}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &views))
		assert.Len(t, views, 2)
		assert.Equal(t, 1, views[0].ID)
		assert.Equal(t, 50.00, views[0].Sum)
		assert.Equal(t, 1.64, views[1].VATPrice)
		assert.Equal(t, 3.28, views[1].Sum)
		assert.Equal(t, map[string]string{"flavour": "lemon"}, views[1].Props)
	})

	t.Run("Get item", func(t *testing.T) {
		// given
		c, router, store, _, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket/2/", fuserA, nil)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"id":2,"productId":14,"name":"Sports drink","price":1.5,"vatPrice":1.64,"quantity":2,"sum":3.28,"currency":"EUR","props":{"flavour":"lemon"}}`, response.Body.String())
	})

	t.Run("Get item not exists", func(t *testing.T) {
		// given
		c, router, store, _, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket/3/", fuserA, nil)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Contains(t, response.Body.String(), "Basket item with id 3 not found.")
	})

	t.Run("Get item of other visitor", func(t *testing.T) {
		// given
		c, router, store, _, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket/1/", fuserB, nil)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Get item with non numeric id", func(t *testing.T) {
		// given
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket/abc/", fuserA, nil)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Add item", func(t *testing.T) {
		// given
		c, router, store, publisher, _ := setup(t, ctrl)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, basketevents.BasketItemAdded{
			BasketUID: composeBasketUID(fuserA, siteID),
			ItemID:    1,
			ProductID: 7,
			Quantity:  10,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/", fuserA, url.Values{
			"productId":      {"7"},
			"quantity":       {"10"},
			"props[colour]":  {"yellow"},
			"props[surface]": {"clay"},
		})

		// then
		assert.Equal(t, http.StatusCreated, response.Code)
		assert.JSONEq(t, `{"id":1,"link":"/api/basket/1/"}`, response.Body.String())
		basket, found, _ := store.Get(c, composeBasketUID(fuserA, siteID))
		assert.True(t, found)
		assert.Len(t, basket.Items, 1)
		assert.Equal(t, 10.0, basket.Items[0].Quantity)
		assert.Equal(t, "Tennis balls", basket.Items[0].Name)
		assert.Equal(t, map[string]string{"colour": "yellow", "surface": "clay"}, basket.Items[0].PropsMap())
	})

	t.Run("Add item with quantity not a multiple of ratio", func(t *testing.T) {
		// given
		c, router, store, publisher, _ := setup(t, ctrl)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/", fuserA, url.Values{
			"productId": {"7"},
			"quantity":  {"7"},
		})

		// then
		assert.Equal(t, http.StatusCreated, response.Code)
		basket, _, _ := store.Get(c, composeBasketUID(fuserA, siteID))
		assert.Equal(t, 5.0, basket.Items[0].Quantity)
	})

	t.Run("Add same product merges", func(t *testing.T) {
		// given
		c, router, store, publisher, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, basketevents.BasketItemAdded{
			BasketUID: basketA.UID,
			ItemID:    1,
			ProductID: 7,
			Quantity:  10,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/", fuserA, url.Values{
			"productId": {"7"},
			"quantity":  {"5"},
		})

		// then
		assert.Equal(t, http.StatusCreated, response.Code)
		assert.JSONEq(t, `{"id":1,"link":"/api/basket/1/"}`, response.Body.String())
		basket, _, _ := store.Get(c, basketA.UID)
		assert.Len(t, basket.Items, 2)
	})

	t.Run("Add quantity not a multiple of ratio to existing item adds one ratio unit", func(t *testing.T) {
		// given
		c, router, store, publisher, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, basketevents.BasketItemAdded{
			BasketUID: basketA.UID,
			ItemID:    1,
			ProductID: 7,
			Quantity:  10,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/", fuserA, url.Values{
			"productId": {"7"},
			"quantity":  {"7"},
		})

		// then
		assert.Equal(t, http.StatusCreated, response.Code)
		basket, _, _ := store.Get(c, basketA.UID)
		item, found := basket.GetItemByID(1)
		assert.True(t, found)
		assert.Equal(t, 10.0, item.Quantity)
	})

	t.Run("Add same product with other props is a new item", func(t *testing.T) {
		// given
		c, router, store, publisher, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/", fuserA, url.Values{
			"productId":     {"14"},
			"quantity":      {"1"},
			"props[flavour]": {"orange"},
		})

		// then
		assert.Equal(t, http.StatusCreated, response.Code)
		assert.JSONEq(t, `{"id":3,"link":"/api/basket/3/"}`, response.Body.String())
		basket, _, _ := store.Get(c, basketA.UID)
		assert.Len(t, basket.Items, 3)
	})

	t.Run("Add unknown product", func(t *testing.T) {
		// given
		c, router, store, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/", fuserA, url.Values{
			"productId": {"999"},
			"quantity":  {"1"},
		})

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Contains(t, response.Body.String(), "There is no product with id 999.")
		_, found, _ := store.Get(c, composeBasketUID(fuserA, siteID))
		assert.False(t, found)
	})

	t.Run("Add inactive product with invalid quantity", func(t *testing.T) {
		// given
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/", fuserA, url.Values{
			"productId": {"15"},
			"quantity":  {"0"},
		})

		// then
		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
		assert.Contains(t, response.Body.String(), "Product 15 is not available.; Quantity must be greater than zero.")
	})

	t.Run("Add with unparsable quantity", func(t *testing.T) {
		// given
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/", fuserA, url.Values{
			"productId": {"7"},
			"quantity":  {"many"},
		})

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("Update item", func(t *testing.T) {
		// given
		c, router, store, publisher, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, basketevents.BasketItemUpdated{
			BasketUID:   basketA.UID,
			ItemID:      1,
			Name:        "Yellow balls",
			Quantity:    7,
			Price:       8.5,
			CustomPrice: true,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/1/", fuserA, url.Values{
			"name":     {"Yellow balls"},
			"quantity": {"7"},
			"price":    {"8.50"},
		})

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		view := itemView{}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &view))
		assert.Equal(t, "Yellow balls", view.Name)
		assert.Equal(t, 7.0, view.Quantity)
		assert.Equal(t, 59.5, view.Sum)
		basket, _, _ := store.Get(c, basketA.UID)
		assert.True(t, basket.Items[0].CustomPrice)
		assert.NotNil(t, basket.LastModified)
	})

	t.Run("Update without recognized fields does not save", func(t *testing.T) {
		// given
		c, router, store, _, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/1/", fuserA, url.Values{
			"colour": {"red"},
		})

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		basket, _, _ := store.Get(c, basketA.UID)
		assert.Nil(t, basket.LastModified)
		assert.Equal(t, basketA.Items[0], basket.Items[0])
	})

	t.Run("Update with falsy price resets to catalog price", func(t *testing.T) {
		// given
		c, router, store, publisher, _ := setup(t, ctrl)
		customized := basketA
		customized.Items = []BasketItem{{ID: 1, ProductID: 7, Name: "Tennis balls", Price: 3.00, VATIncluded: true, Quantity: 5, Currency: "EUR", CustomPrice: true}}
		assert.NoError(t, store.Put(c, customized.UID, customized))
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/1/", fuserA, url.Values{
			"price": {"0"},
		})

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		basket, _, _ := store.Get(c, customized.UID)
		assert.False(t, basket.Items[0].CustomPrice)
		assert.Equal(t, 10.00, basket.Items[0].Price)
	})

	t.Run("Update with rejected field does not save", func(t *testing.T) {
		// given
		c, router, store, _, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/1/", fuserA, url.Values{
			"name":     {"Yellow balls"},
			"quantity": {"-1"},
		})

		// then
		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
		assert.Contains(t, response.Body.String(), "Quantity must be greater than zero.")
		basket, _, _ := store.Get(c, basketA.UID)
		assert.Equal(t, "Tennis balls", basket.Items[0].Name)
	})

	t.Run("Update item not exists", func(t *testing.T) {
		// given
		c, router, store, _, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/9/", fuserA, url.Values{
			"name": {"Other"},
		})

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Update item of other visitor", func(t *testing.T) {
		// given
		c, router, store, _, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/1/", fuserB, url.Values{
			"name": {"Stolen"},
		})

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
		basket, _, _ := store.Get(c, basketA.UID)
		assert.Equal(t, "Tennis balls", basket.Items[0].Name)
	})

	t.Run("Delete item", func(t *testing.T) {
		// given
		c, router, store, publisher, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, basketevents.BasketItemDeleted{
			BasketUID: basketA.UID,
			ItemID:    1,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/delete/1/", fuserA, nil)

		// then
		assert.Equal(t, http.StatusNoContent, response.Code)
		assert.Empty(t, response.Body.String())
		response = doRequest(t, router, http.MethodGet, "/api/basket/1/", fuserA, nil)
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Delete item not exists", func(t *testing.T) {
		// given
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/delete/1/", fuserA, nil)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Delete with failing publisher", func(t *testing.T) {
		// given
		c, router, store, publisher, _ := setup(t, ctrl)
		assert.NoError(t, store.Put(c, basketA.UID, basketA))
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("outbox down"))

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket/delete/1/", fuserA, nil)

		// then
		assert.Equal(t, http.StatusInternalServerError, response.Code)
		stored, found, err := store.Get(c, basketA.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Len(t, stored.Items, len(basketA.Items))
		_, itemFound := stored.GetItemByID(1)
		assert.True(t, itemFound)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Basket], *mypublisher.MockPublisher, *myuuid.MockUUIDer) {
	c := context.TODO()
	store, _, _ := mystore.NewInMemoryStore[Basket](c)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	cat := catalog.NewMockCatalog(ctrl)
	products := map[int]catalog.Product{tennisBalls.ID: tennisBalls, sportsDrink.ID: sportsDrink, squash.ID: squash}
	cat.EXPECT().GetProduct(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, productID int) (catalog.Product, bool, error) {
		p, found := products[productID]
		return p, found, nil
	}).AnyTimes()
	cat.EXPECT().GetRatio(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, productID int) (catalog.Ratio, bool, error) {
		p, found := products[productID]
		return p.GetRatio(), found, nil
	}).AnyTimes()

	sut := NewService(store, cat, publisher, nower, uuider, siteID)
	router := mux.NewRouter()

	// Called by the following call to RegisterEndpoints()
	publisher.EXPECT().CreateTopic(c, basketevents.TopicName).Return(nil)

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, store, publisher, uuider
}

func doRequest(t *testing.T, router *mux.Router, method string, path string, fuserUID string, values url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	} else {
		body = strings.NewReader("")
	}
	request, err := http.NewRequest(method, path, body)
	assert.NoError(t, err)
	request.Host = "localhost:8888"
	if method == http.MethodPost {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if fuserUID != "" {
		request.AddCookie(&http.Cookie{Name: fuserCookieName, Value: fuserUID})
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}
