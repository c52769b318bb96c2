package data

import (
	"fmt"

	"github.com/go-faker/faker/v4"

	"github.com/entrhq/harbor/pkg/config"
	"github.com/entrhq/harbor/pkg/logging"
)

// fakeUser is the faker seed for generated user records.
type fakeUser struct {
	FirstName string            `faker:"first_name"`
	LastName  string            `faker:"last_name"`
	Email     string            `faker:"email"`
	Password  string            `faker:"password"`
	Phone     string            `faker:"phone_number"`
	Address   faker.RealAddress `faker:"real_address"`
}

// Generator produces realistic throwaway test data for scenarios that must
// not reuse static fixture records, like registration flows.
type Generator struct {
	log *logging.Logger
}

// NewGenerator creates a fake data generator.
func NewGenerator() *Generator {
	log, _ := logging.NewLogger("data")
	return &Generator{log: log}
}

// User generates a complete fake user record.
func (g *Generator) User() (config.User, error) {
	var seed fakeUser
	if err := faker.FakeData(&seed); err != nil {
		return config.User{}, fmt.Errorf("failed to generate user: %w", err)
	}

	user := config.User{
		FirstName: seed.FirstName,
		LastName:  seed.LastName,
		Email:     seed.Email,
		Password:  seed.Password,
		Phone:     seed.Phone,
		Address:   fmt.Sprintf("%s, %s, %s %s", seed.Address.Address, seed.Address.City, seed.Address.State, seed.Address.PostalCode),
	}

	g.log.Debugf("generated user %s", user.Email)
	return user, nil
}

// Email generates a fake email address.
func (g *Generator) Email() (string, error) {
	var seed struct {
		Email string `faker:"email"`
	}
	if err := faker.FakeData(&seed); err != nil {
		return "", fmt.Errorf("failed to generate email: %w", err)
	}
	return seed.Email, nil
}

// Password generates a fake password.
func (g *Generator) Password() (string, error) {
	var seed struct {
		Password string `faker:"password"`
	}
	if err := faker.FakeData(&seed); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return seed.Password, nil
}
