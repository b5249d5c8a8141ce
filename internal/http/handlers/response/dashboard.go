package response

import (
	"accountms/internal/core/domain/user"

	"github.com/golang-module/carbon/v2"
)

type Dashboard struct {
	AccountAge  string `json:"account_age"`
	TotalLogins int64  `json:"total_logins"`
}

func (d *Dashboard) FromDomainUser(du user.User) {
	d.AccountAge = carbon.CreateFromStdTime(du.CreatedAt).DiffForHumans()
	d.TotalLogins = du.TotalLogins
}
