package http

import (
	"fmt"
	"net/http"
	"strconv"

	"store-service/internal/auth"
	"store-service/internal/domain"
	"store-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	users       *services.UserService
	customers   *services.CustomerService
	catalog     *services.CatalogService
	entitlement *services.EntitlementService
	orders      *services.OrderService
	authSecret  string
}

func NewHandler(
	users *services.UserService,
	customers *services.CustomerService,
	catalog *services.CatalogService,
	entitlement *services.EntitlementService,
	orders *services.OrderService,
	authSecret string,
) *Handler {
	return &Handler{
		users:       users,
		customers:   customers,
		catalog:     catalog,
		entitlement: entitlement,
		orders:      orders,
		authSecret:  authSecret,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(Authenticate(h.authSecret))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/users", Authorize(auth.ResourceUser, auth.OpCreate), h.RegisterUser)
	r.GET("/users", Authorize(auth.ResourceUser, auth.OpList), h.ListUsers)
	r.GET("/users/:id", Authorize(auth.ResourceUser, auth.OpRead), h.GetUser)
	r.PATCH("/users/:id", Authorize(auth.ResourceUser, auth.OpUpdate), h.UpdateUser)

	r.GET("/categories", Authorize(auth.ResourceCategory, auth.OpList), h.ListCategories)
	r.POST("/categories", Authorize(auth.ResourceCategory, auth.OpCreate), h.CreateCategory)
	r.GET("/categories/:id", Authorize(auth.ResourceCategory, auth.OpRead), h.GetCategory)
	r.PATCH("/categories/:id", Authorize(auth.ResourceCategory, auth.OpUpdate), h.UpdateCategory)
	r.DELETE("/categories/:id", Authorize(auth.ResourceCategory, auth.OpDelete), h.DeleteCategory)

	r.GET("/products", Authorize(auth.ResourceProduct, auth.OpList), h.ListProducts)
	r.POST("/products", Authorize(auth.ResourceProduct, auth.OpCreate), h.CreateProduct)
	r.GET("/products/:id", Authorize(auth.ResourceProduct, auth.OpRead), h.GetProduct)
	r.PATCH("/products/:id", Authorize(auth.ResourceProduct, auth.OpUpdate), h.UpdateProduct)
	r.DELETE("/products/:id", Authorize(auth.ResourceProduct, auth.OpDelete), h.DeleteProduct)

	r.GET("/products/:id/files", Authorize(auth.ResourceProductFile, auth.OpList), h.ListProductFiles)
	r.POST("/products/:id/files", Authorize(auth.ResourceProductFile, auth.OpCreate), h.UploadProductFile)
	r.GET("/products/:id/files/:fileID", Authorize(auth.ResourceProductFile, auth.OpRead), h.DownloadProductFile)
	r.PATCH("/products/:id/files/:fileID", Authorize(auth.ResourceProductFile, auth.OpUpdate), h.ReplaceProductFile)
	r.DELETE("/products/:id/files/:fileID", Authorize(auth.ResourceProductFile, auth.OpDelete), h.DeleteProductFile)

	r.GET("/customers", Authorize(auth.ResourceCustomer, auth.OpList), h.ListCustomers)
	r.GET("/customers/:id", Authorize(auth.ResourceCustomer, auth.OpRead), h.GetCustomer)
	r.PATCH("/customers/:id", Authorize(auth.ResourceCustomer, auth.OpUpdate), h.UpdateCustomer)
	// customers exist only through registration
	r.POST("/customers", methodNotAllowed)
	r.DELETE("/customers/:id", methodNotAllowed)

	r.GET("/orders", Authorize(auth.ResourceOrder, auth.OpList), h.ListOrders)
	r.GET("/orders/:id", Authorize(auth.ResourceOrder, auth.OpRead), h.GetOrder)
	r.PATCH("/orders/:id/status", Authorize(auth.ResourceOrder, auth.OpUpdate), h.SetOrderStatus)
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

// ---- users ----

func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Update(actorFrom(c), id, services.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ---- categories ----

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.catalog.CreateCategory(c.Request.Context(), req.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.catalog.UpdateCategory(c.Request.Context(), id, req.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- products ----

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.catalog.CreateProduct(c.Request.Context(), services.ProductInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, services.ProductPatch{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- product files ----

// requireFileAccess runs the entitlement check for non-staff actors.
// Staff manage files and are exempt.
func (h *Handler) requireFileAccess(c *gin.Context, productID uint64) bool {
	actor := actorFrom(c)
	if actor.IsStaff {
		return true
	}
	entitled, err := h.entitlement.CanAccessFiles(c.Request.Context(), actor.UserID, productID)
	if err != nil {
		writeError(c, err)
		return false
	}
	if !entitled {
		writeError(c, domain.ErrNotEntitled)
		return false
	}
	return true
}

func (h *Handler) ListProductFiles(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !h.requireFileAccess(c, productID) {
		return
	}
	files, err := h.catalog.ListFiles(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

func (h *Handler) DownloadProductFile(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	fileID, ok := parseID(c, "fileID")
	if !ok {
		return
	}
	if !h.requireFileAccess(c, productID) {
		return
	}
	file, err := h.catalog.GetFile(c.Request.Context(), productID, fileID)
	if err != nil {
		writeError(c, err)
		return
	}
	reader, size, err := h.catalog.OpenFile(file)
	if err != nil {
		writeError(c, err)
		return
	}
	defer reader.Close()

	// opaque download name: never the stored upload name
	downloadName := uuid.New().String() + ".pdf"
	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", downloadName),
	}
	c.DataFromReader(http.StatusOK, size, "application/pdf", reader, headers)
}

func (h *Handler) UploadProductFile(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	file, err := h.catalog.AttachFile(c.Request.Context(), productID, header.Filename, src)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

func (h *Handler) ReplaceProductFile(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	fileID, ok := parseID(c, "fileID")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	file, err := h.catalog.ReplaceFile(c.Request.Context(), productID, fileID, header.Filename, src)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

func (h *Handler) DeleteProductFile(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	fileID, ok := parseID(c, "fileID")
	if !ok {
		return
	}
	if err := h.catalog.DeleteFile(c.Request.Context(), productID, fileID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- customers ----

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customers.Get(actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.customers.UpdatePhone(actorFrom(c), id, req.Phone)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

// ---- orders ----

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) SetOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
