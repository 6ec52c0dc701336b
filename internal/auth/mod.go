package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"coverly-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth guards a route group: the request must carry a valid access token
// that has not been blacklisted.
func Auth(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			util.HandleError(c, 401, errors.New("request does not contain an access token"))
			c.Abort()
			return
		}
		_, err := ValidateToken(tokenString)
		if err != nil {
			util.HandleError(c, 401, err)
			c.Abort()
			return
		}

		if !IsTokenValid(rdb, tokenString) {
			util.HandleError(c, 401, errors.New("token has been revoked, please login again"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// Validate param userid against the authenticated token's user id.
func ValidateUserID(c *gin.Context) (primitive.ObjectID, error) {
	claim, err := InitJwtClaim(c)
	if err != nil {
		errMsg := fmt.Sprintf("unauthorized: User ID not found in authentication token - %v", err.Error())
		return primitive.NilObjectID, errors.New(errMsg)
	}

	userId := c.Param("userid")
	res, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if userId != claim.Id {
		return primitive.NilObjectID, errors.New("unauthorized: User ID in the URL path doesn't match with currently authenticated user")
	}

	return res, nil
}

// InvalidateToken adds the token to the blacklist for 24 hours.
func InvalidateToken(db *redis.Client, tokenString string) error {
	_, err := db.Set(context.Background(), tokenString, true, 24*time.Hour).Result()
	if err != nil {
		return err
	}

	return nil
}

// Check if token is in the blacklist.
func IsTokenValid(db *redis.Client, tokenString string) bool {
	_, err := db.Get(context.Background(), tokenString).Result()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		log.Printf("Error while checking blacklist: %s", err)
		return false
	}

	// Token is in the blacklist, so it's invalid
	return false
}
