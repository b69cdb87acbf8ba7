package domain

import "errors"

var (
	ErrTweetFailed = errors.New("error posting tweet")
	ErrEmptyTweet  = errors.New("tweet text is required")
)
