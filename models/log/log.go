package log

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log is one persisted request/response record written by the async logger.
type Log struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Method          string             `bson:"method" json:"method"`
	URL             string             `bson:"url" json:"url"`
	RequestBody     string             `bson:"requestBody" json:"requestBody"`
	ResponseBody    string             `bson:"responseBody" json:"responseBody"`
	RequestHeaders  string             `bson:"requestHeaders" json:"requestHeaders"`
	ResponseHeaders string             `bson:"responseHeaders" json:"responseHeaders"`
	StatusCode      int                `bson:"statusCode" json:"statusCode"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
