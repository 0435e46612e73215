package main

import "errors"

var errGameNotFound = errors.New("game not found")
