package domain

import "errors"

var (
	// ErrUserNotFound indicates no devotee record exists for the identifier
	ErrUserNotFound = errors.New("user not found")

	// ErrSankalpaNotFound indicates the campaign does not exist
	ErrSankalpaNotFound = errors.New("sankalpa not found")

	// ErrSankalpaClosed indicates the campaign is inactive or outside its window
	ErrSankalpaClosed = errors.New("sankalpa is not accepting entries")

	// ErrBookNotFound indicates the library record does not exist
	ErrBookNotFound = errors.New("book not found")

	// ErrQuoteNotFound indicates no quote is assigned to the requested day
	ErrQuoteNotFound = errors.New("no quote for this day")
)
