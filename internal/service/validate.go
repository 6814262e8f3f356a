package service

import "github.com/go-playground/validator/v10"

var validate = validator.New()

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
