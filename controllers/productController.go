package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"

	"github.com/aurelshop/aurel-api/initializers"
	"github.com/aurelshop/aurel-api/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProduct adds a catalog record. Admin only; rating and review
// count start at zero and are owned by the review aggregator.
func CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	product.Rating = 0
	product.NumReviews = 0

	if err := initializers.DB.Create(&product).Error; err != nil {
		log.Println("Product create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create product")
		return
	}

	sendSuccessResponse(ctx, http.StatusCreated, "Product created successfully", product)
}

func UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, productID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	var body models.Product
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Rating and numReviews stay derived; they are never written here.
	updates := map[string]any{
		"name":         body.Name,
		"description":  body.Description,
		"brand":        body.Brand,
		"price":        body.Price,
		"discount":     body.Discount,
		"category":     body.Category,
		"sub_category": body.SubCategory,
		"sizes":        body.Sizes,
		"colors":       body.Colors,
		"stock":        body.Stock,
		"featured":     body.Featured,
		"trending":     body.Trending,
	}

	if err := initializers.DB.Model(&product).Updates(updates).Error; err != nil {
		log.Println("Product update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update product")
		return
	}

	initializers.DB.Preload("Images").First(&product, productID)
	sendSuccessResponse(ctx, http.StatusOK, "Product updated successfully", product)
}

func DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	result := initializers.DB.Delete(&models.Product{}, productID)
	if result.Error != nil {
		log.Println("Product delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Product deleted successfully", nil)
}

func GetProducts(ctx *gin.Context) {
	var products []models.Product

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	offset := (page - 1) * limit

	filters := func(db *gorm.DB) *gorm.DB {
		if search := ctx.Query("search"); search != "" {
			db = db.Where("name LIKE ?", "%"+search+"%")
		}
		if category := ctx.Query("category"); category != "" {
			db = db.Where("category = ?", category)
		}
		if subCategory := ctx.Query("subCategory"); subCategory != "" {
			db = db.Where("sub_category = ?", subCategory)
		}
		if ctx.Query("featured") == "true" {
			db = db.Where("featured = ?", true)
		}
		if ctx.Query("trending") == "true" {
			db = db.Where("trending = ?", true)
		}
		return db
	}

	var count int64
	if err := filters(initializers.DB.Model(&models.Product{})).Count(&count).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	result := filters(initializers.DB.Preload("Images")).
		Limit(limit).Offset(offset).Order("created_at desc").Find(&products)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	totalPages := math.Ceil(float64(count) / float64(limit))

	sendSuccessResponse(ctx, http.StatusOK, "", gin.H{
		"products": products,
		"metadata": gin.H{
			"total":       count,
			"page":        page,
			"limit":       limit,
			"hasNextPage": int(totalPages) > page,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	result := initializers.DB.Preload("Images").First(&product, productID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve product")
		}
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "", product)
}

// getAWSUploader returns a configured S3 uploader.
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadImages stores multipart images in S3 and returns their URLs
// and object keys. When a productId field is present the images are
// also attached to that product's catalog record.
func UploadImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		files = form.File["image"]
	}
	if len(files) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "No files uploaded")
		return
	}

	var productID int
	if productIdStr := ctx.PostForm("productId"); productIdStr != "" {
		productID, err = strconv.Atoi(productIdStr)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid productId")
			return
		}
		var product models.Product
		if result := initializers.DB.First(&product, productID); result.Error != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
			return
		}
	}

	uploader, err := getAWSUploader()
	if err != nil {
		log.Println("AWS config error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to configure media storage")
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	var uploaded []gin.H
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		key := fmt.Sprintf("aurel/%s-%s", uuid.NewString(), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close()

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploaded = append(uploaded, gin.H{"url": result.Location, "key": key})

		if productID > 0 {
			productImage := models.ProductImage{
				Url:       result.Location,
				Key:       key,
				ProductID: uint(productID),
			}
			if err := initializers.DB.Create(&productImage).Error; err != nil {
				log.Printf("Error saving image to database: %v", err)
			}
		}
	}

	if len(uploaded) == 0 {
		sendErrorResponse(ctx, http.StatusBadGateway, "All uploads failed")
		return
	}

	data := gin.H{"images": uploaded}
	if len(failedUploads) > 0 {
		data["failed"] = failedUploads
	}

	sendSuccessResponse(ctx, http.StatusOK, "Files processed", data)
}
