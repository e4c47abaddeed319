package cache

import "fmt"

func VoicesKey(keyID string) string {
	return fmt.Sprintf("elevenlabs:voices:%s", keyID)
}

func QuotaKey(keyID string) string {
	return fmt.Sprintf("elevenlabs:quota:%s", keyID)
}

func RateLimitKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:%s", clientIP)
}
