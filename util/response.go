package util

// Response envelopes shared by every controller.

func SuccessResponse(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": data,
	}
}

func FailedResponse(err error) map[string]interface{} {
	return map[string]interface{}{
		"error": err.Error(),
	}
}
