package server

import wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"

func credentials(email, password string) wire.Credentials {
	return wire.Credentials{Email: email, Password: password}
}
