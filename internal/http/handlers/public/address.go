package public

import (
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 收货地址写入请求
type AddressRequest struct {
	StreetAddress string `json:"street_address" binding:"required,max=255"`
	City          string `json:"city" binding:"required,max=100"`
	State         string `json:"state" binding:"required,ng_state"`
	PhoneNumber   string `json:"phone_number" binding:"required,max=20"`
	IsDefault     *bool  `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		StreetAddress: r.StreetAddress,
		City:          r.City,
		State:         r.State,
		PhoneNumber:   r.PhoneNumber,
		IsDefault:     r.IsDefault,
	}
}

// ListAddresses 我的收货地址（默认地址在前）
func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.ListAddresses(userID)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.query_failed")
		return
	}
	response.Success(c, addresses)
}

// GetDefaultAddress 默认收货地址
func (h *Handler) GetDefaultAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	address, err := h.AddressService.GetDefault(userID)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.query_failed")
		return
	}
	response.Success(c, address)
}

// GetAddress 收货地址详情
func (h *Handler) GetAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	address, err := h.AddressService.GetAddress(userID, addressID)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.query_failed")
		return
	}
	response.Success(c, address)
}

// CreateAddress 新增收货地址
func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	address, err := h.AddressService.CreateAddress(userID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.save_failed")
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新收货地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	address, err := h.AddressService.UpdateAddress(userID, addressID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.save_failed")
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除收货地址（被订单引用时拒绝）
func (h *Handler) DeleteAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	if err := h.AddressService.DeleteAddress(userID, addressID); err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}

// SetDefaultAddress 设为默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	address, err := h.AddressService.SetDefault(userID, addressID)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.save_failed")
		return
	}
	response.Success(c, address)
}
