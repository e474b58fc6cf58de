package server

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"gatormarket/internal/models"
	"gatormarket/internal/repository"
	"gatormarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchProducts handles GET /api/products/search
// @Summary Search approved listings
// @Tags products
// @Produce json
// @Param term query string false "Matches name or description"
// @Param category query int false "Category ID"
// @Param user_id query int false "Seller ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.ProductResponse
// @Header 200 {int} X-Total-Count "Total matches"
// @Router /products/search [get]
func (s *Server) SearchProducts(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	filter := repository.ProductFilter{
		Term:   strings.TrimSpace(c.Query("term")),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if v := c.QueryInt("category", 0); v > 0 {
		filter.CategoryID = uint(v)
	}
	if v := c.QueryInt("user_id", 0); v > 0 {
		filter.UserID = uint(v)
	}

	products, total, err := s.productService.Search(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, models.NewProductResponse(&products[i]))
	}
	c.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return c.JSON(resp)
}

// GetProduct handles GET /api/products/:id
// @Summary Listing detail with seller rating
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (s *Server) GetProduct(c *fiber.Ctx) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.productService.Get(c.UserContext(), productID)
	if err != nil {
		return respondError(c, err)
	}
	resp := models.NewProductResponse(detail.Product)
	resp.SellerRating = detail.Rating.Average
	return c.JSON(resp)
}

// ServeProductImage handles GET /api/products/images/:filename
// @Summary Serve a listing image
// @Description Pending listings get a placeholder; rejected or unknown images are not found.
// @Tags products
// @Produce png
// @Param filename path string true "Stored filename"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /products/images/{filename} [get]
func (s *Server) ServeProductImage(c *fiber.Ctx) error {
	served, err := s.imageService.Resolve(c.UserContext(), c.Params("filename"))
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	if served.Placeholder {
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Type("png")
		return c.Send(service.PlaceholderPNG())
	}
	return c.SendFile(served.Path)
}

// UploadProductImage handles POST /api/products/upload-image
// @Summary Upload a single listing image
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PNG or JPEG image"
// @Success 200 {object} service.StoredImage
// @Failure 400 {object} models.ErrorResponse
// @Router /products/upload-image [post]
func (s *Server) UploadProductImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	in, err := readUpload(currentUserID(c), file)
	if err != nil {
		return respondError(c, err)
	}

	stored, err := s.productService.UploadImage(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stored)
}

// CreateProduct handles POST /api/products
// @Summary Create a listing
// @Description Listings start pending approval. At least one image is required.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Name"
// @Param description formData string false "Description"
// @Param price formData number true "Price"
// @Param condition formData string false "Condition"
// @Param category_id formData int false "Category ID"
// @Param images formData file true "One or more images"
// @Success 201 {object} object{message=string,product_id=int,product=models.ProductResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /products [post]
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported content type. Use multipart/form-data for file uploads."))
	}

	userID := currentUserID(c)
	in := service.CreateProductInput{
		UserID:      userID,
		Name:        formValue(form, "name"),
		Description: formValue(form, "description"),
		Condition:   formValue(form, "condition"),
	}

	price, err := strconv.ParseFloat(formValue(form, "price"), 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid price"))
	}
	in.Price = price

	if raw := formValue(form, "category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid category"))
		}
		categoryID := uint(id)
		in.CategoryID = &categoryID
	}

	for _, fh := range form.File["images"] {
		upload, err := readUpload(userID, fh)
		if err != nil {
			return respondError(c, err)
		}
		in.Images = append(in.Images, upload)
	}

	product, err := s.productService.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Product created successfully",
		"product_id": product.ID,
		"product":    models.NewProductResponse(product),
	})
}

// UpdateProduct handles PUT /api/products/:id
// @Summary Update an owned listing
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body service.UpdateProductInput true "Fields to change"
// @Success 200 {object} object{message=string,product=models.ProductResponse}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateProductInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	product, err := s.productService.Update(c.UserContext(), currentUserID(c), productID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": models.NewProductResponse(product),
	})
}

// DeleteProduct handles DELETE /api/products/:id
// @Summary Delete an owned listing and everything attached to it
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} object{message=string,product_id=int}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.productService.Delete(c.UserContext(), currentUserID(c), productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    "Product deleted successfully",
		"product_id": productID,
	})
}

// MarkProductSold handles PUT /api/products/:id/mark-sold
// @Summary Mark an owned listing as sold
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /products/{id}/mark-sold [put]
func (s *Server) MarkProductSold(c *fiber.Ctx) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.productService.MarkSold(c.UserContext(), currentUserID(c), productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product marked as sold"})
}

// GetCategories handles GET /api/categories
// @Summary List categories
// @Tags products
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.productService.Categories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func readUpload(userID uint, fh *multipart.FileHeader) (service.UploadImageInput, error) {
	src, err := fh.Open()
	if err != nil {
		return service.UploadImageInput{}, models.NewValidationError("Invalid file uploaded")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return service.UploadImageInput{}, models.NewValidationError("Invalid file uploaded")
	}
	return service.UploadImageInput{
		UserID:   userID,
		Filename: fh.Filename,
		Content:  content,
	}, nil
}
