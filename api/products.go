package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"auction/bidding"
	"auction/listing"
	"auction/models"
)

func productIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: "invalid product id"})
		return uuid.Nil, false
	}
	return id, true
}

// visible 判斷呼叫者是否可以看到商品: 已公開，或呼叫者可以編輯
func (impl *ServerImpl) visible(c *gin.Context, product models.Product) (bool, error) {
	if product.Published {
		return true, nil
	}
	identity, err := identityFrom(c)
	if err != nil {
		return false, nil
	}
	return impl.listing.CanEdit(c.Request.Context(), identity.Username, product)
}

// visibleProduct 取得呼叫者可見的商品，不可見的商品視為不存在
func (impl *ServerImpl) visibleProduct(c *gin.Context, op string, id uuid.UUID) (*models.Product, error) {
	product, err := impl.listing.Get(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	ok, err := impl.visible(c, *product)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("[%s] Product is not published, productID=%s, err=%w", op, id, bidding.ErrNotFound)
	}
	return product, nil
}

// Search products by title keyword
// (GET /products)
func (impl *ServerImpl) GetProducts(c *gin.Context) {
	const op = "GetProducts"
	products, err := impl.listing.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	resp := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		ok, err := impl.visible(c, product)
		if err != nil {
			impl.respondError(c, op, err)
			return
		}
		if ok {
			resp = append(resp, newProductResponse(product, nil))
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Create a product
// (POST /products)
func (impl *ServerImpl) PostProducts(c *gin.Context) {
	const op = "PostProducts"
	identity, err := identityFrom(c)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	var body CreateProductRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := impl.listing.Create(c.Request.Context(), identity.Username, listing.CreateRequest{
		Title:       body.Title,
		Description: body.Description,
		StartPrice:  body.StartPrice,
		Published:   body.Published,
	})
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	c.JSON(http.StatusCreated, newProductResponse(*product, nil))
}

// Get product detail with the leading bid
// (GET /products/:productID)
func (impl *ServerImpl) GetProduct(c *gin.Context) {
	const op = "GetProduct"
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	product, err := impl.visibleProduct(c, op, id)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	leader, err := impl.engine.Leader(c.Request.Context(), id)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(*product, leader))
}

// Edit a product's title and description
// (PUT /products/:productID)
func (impl *ServerImpl) PutProduct(c *gin.Context) {
	const op = "PutProduct"
	identity, err := identityFrom(c)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	var body UpdateProductRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := impl.listing.Update(c.Request.Context(), identity.Username, id, body.Title, body.Description)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(*product, nil))
}

// Delete a product
// (DELETE /products/:productID)
func (impl *ServerImpl) DeleteProduct(c *gin.Context) {
	const op = "DeleteProduct"
	identity, err := identityFrom(c)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	if err := impl.listing.Delete(c.Request.Context(), identity.Username, id); err != nil {
		impl.respondError(c, op, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Publish or hide a product
// (PUT /products/:productID/published)
func (impl *ServerImpl) PutProductPublished(c *gin.Context) {
	const op = "PutProductPublished"
	identity, err := identityFrom(c)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	var body PublishRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := impl.listing.SetPublished(c.Request.Context(), identity.Username, id, lo.FromPtr(body.Published))
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(*product, nil))
}

// caller 取得呼叫者在系統中的使用者資料
func (impl *ServerImpl) caller(c *gin.Context, op string) (*models.User, error) {
	identity, err := identityFrom(c)
	if err != nil {
		return nil, err
	}
	user, err := impl.repo.FindUserByUsername(c.Request.Context(), identity.Username)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to find user, err=%w", op, errors.Join(bidding.ErrStorage, err))
	}
	if user == nil {
		return nil, fmt.Errorf("[%s] Unknown user, username=%s, err=%w", op, identity.Username, bidding.ErrUnauthenticated)
	}
	return user, nil
}
