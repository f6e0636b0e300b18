package utility

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// P2Int64 chuyển đổi tham số query (chuỗi) thành int64, trả về 0 nếu không hợp lệ
func P2Int64(input string) int64 {
	result, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

// String2ObjectID chuyển đổi chuỗi thành ObjectID
// @params - chuỗi cần chuyển đổi
// @returns - ObjectID
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}
