// messages.go - Notification message composition for the standard paths.
package rewards

import "fmt"

func earnMessage(amount int, description string) string {
	return fmt.Sprintf("⭐ %d points added: %s", amount, description)
}

func redeemMessage(reward RewardItem) string {
	return fmt.Sprintf("🎁 You redeemed: %s (−%d pts)", reward.Name, reward.PointsCost)
}
