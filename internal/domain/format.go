package domain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR groups digits the way Indian rupee amounts are written.
func FormatINR(amount int64) string {
	return inrPrinter.Sprintf("%d", amount)
}

// CorrectMessage is shown after a correct answer below the last rung.
func CorrectMessage(prize int64) string {
	return fmt.Sprintf("Correct! You have won ₹%s. Move to next question.", FormatINR(prize))
}

// WinMessage is shown after clearing the last rung.
func WinMessage(prize int64) string {
	return fmt.Sprintf("Congratulations! You won ₹%s.", FormatINR(prize))
}

// LossMessage is shown after a wrong answer.
func LossMessage(safe int64) string {
	return fmt.Sprintf("Wrong answer. You leave with ₹%s.", FormatINR(safe))
}

// ClaimMessage is shown after a successful daily claim.
func ClaimMessage(coins int64) string {
	return fmt.Sprintf("Claimed %d coins today", coins)
}
