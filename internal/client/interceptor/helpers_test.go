package interceptor

import "github.com/dmitrijs2005/staffkeeper/internal/client/models"

var loginCreds = models.Credentials{Email: "a@b.co", Password: "secret1"}
