package client

import (
	"fmt"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
)

func modelsCreds() models.Credentials {
	return models.Credentials{Email: "a@b.c", Password: "secret1"}
}

func fmtWrap(err error) error {
	return fmt.Errorf("wrapped: %w", err)
}
