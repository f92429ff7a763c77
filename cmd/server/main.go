package main

import "github.com/init-pkg/quiz-import/internal/bootstrap"

func main() {
	bootstrap.Run()
}
