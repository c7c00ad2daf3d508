package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/rs/zerolog/log"
)

// CreateAddressList godoc
// @Summary (Admin) Create a new address list
// @Tags Admin - Address Lists
// @Accept json
// @Produce json
// @Param addressList body dto.CreateAddressListDTO true "Address list data"
// @Success 201 {object} dto.AddressListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/addresslists [post]
func (c *AdminController) CreateAddressList(ctx *gin.Context) {
	var req dto.CreateAddressListDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.addressService.CreateAddressList(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateAddressList: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// FindAddressLists godoc
// @Summary (Admin) Get all address lists
// @Tags Admin - Address Lists
// @Produce json
// @Success 200 {array} dto.AddressListResponse
// @Router /admin/addresslists [get]
func (c *AdminController) FindAddressLists(ctx *gin.Context) {
	resp, err := c.addressService.FindAddressLists()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// FindAddressList godoc
// @Summary (Admin) Get an address list by ID
// @Tags Admin - Address Lists
// @Produce json
// @Param id path int true "Address list ID"
// @Success 200 {object} dto.AddressListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/addresslists/{id} [get]
func (c *AdminController) FindAddressList(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.addressService.FindAddressList(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AddListAddress godoc
// @Summary (Admin) Add an address to an address list
// @Tags Admin - Address Lists
// @Accept json
// @Param id path int true "Address list ID"
// @Param address body dto.AddListAddressDTO true "Address link data"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/addresslists/{id}/addresses [post]
func (c *AdminController) AddListAddress(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.AddListAddressDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.addressService.AddListAddress(id, req.AddressID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Address added successfully"})
}

// DeleteAddressList godoc
// @Summary (Admin) Delete an address list
// @Tags Admin - Address Lists
// @Param id path int true "Address list ID"
// @Success 204
// @Router /admin/addresslists/{id} [delete]
func (c *AdminController) DeleteAddressList(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.addressService.DeleteAddressList(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateAddress godoc
// @Summary (Admin) Create a new address
// @Tags Admin - Addresses
// @Accept json
// @Produce json
// @Param address body dto.CreateAddressDTO true "Address data"
// @Success 201 {object} dto.AddressResponse
// @Router /admin/addresses [post]
func (c *AdminController) CreateAddress(ctx *gin.Context) {
	var req dto.CreateAddressDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.addressService.CreateAddress(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateAddress: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// FindAddresses godoc
// @Summary (Admin) Get all addresses
// @Tags Admin - Addresses
// @Produce json
// @Success 200 {array} dto.AddressResponse
// @Router /admin/addresses [get]
func (c *AdminController) FindAddresses(ctx *gin.Context) {
	resp, err := c.addressService.FindAddresses()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// FindAddress godoc
// @Summary (Admin) Get an address by ID
// @Tags Admin - Addresses
// @Produce json
// @Param id path int true "Address ID"
// @Success 200 {object} dto.AddressResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/addresses/{id} [get]
func (c *AdminController) FindAddress(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.addressService.FindAddress(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteAddress godoc
// @Summary (Admin) Delete an address
// @Tags Admin - Addresses
// @Param id path int true "Address ID"
// @Success 204
// @Router /admin/addresses/{id} [delete]
func (c *AdminController) DeleteAddress(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.addressService.DeleteAddress(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
