package mapping

import (
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/models"
)

// ToModelLoginOTP converts a domain LoginOTP to a model LoginOTP
func ToModelLoginOTP(d domain.LoginOTP) models.LoginOTP {
	return models.LoginOTP{
		OTPID:     d.OTPID,
		Username:  d.Username,
		Code:      d.Code,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
		Attempts:  d.Attempts,
		Consumed:  d.Consumed,
	}
}

// ToDomainLoginOTP converts a model LoginOTP to a domain LoginOTP
func ToDomainLoginOTP(m models.LoginOTP) domain.LoginOTP {
	return domain.LoginOTP{
		OTPID:     m.OTPID,
		Username:  m.Username,
		Code:      m.Code,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		Attempts:  m.Attempts,
		Consumed:  m.Consumed,
	}
}
