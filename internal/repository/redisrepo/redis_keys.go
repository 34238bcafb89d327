package redisrepo

import "fmt"

const (
	USER_KEY        = "user:%s"        // <userID>
	FOLLOWS_KEY     = "follows:%s"     // <userID>
	FOLLOWED_BY_KEY = "followed-by:%s" // <userID>
)

func UserKey(userID string) string {
	return fmt.Sprintf(USER_KEY, userID)
}

func FollowsKey(userID string) string {
	return fmt.Sprintf(FOLLOWS_KEY, userID)
}

func FollowedByKey(userID string) string {
	return fmt.Sprintf(FOLLOWED_BY_KEY, userID)
}
