package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	o := Options{User: "resort", Pass: "s3cret", Host: "127.0.0.1", Port: "3306", Name: "backoffice"}
	assert.Equal(t,
		"resort:s3cret@tcp(127.0.0.1:3306)/backoffice?charset=utf8mb4&parseTime=true&loc=UTC",
		o.dsn())
}

func TestDSNEmptyPasswordOmitsColon(t *testing.T) {
	o := Options{User: "resort", Host: "localhost", Port: "3306", Name: "backoffice"}
	assert.Equal(t,
		"resort@tcp(localhost:3306)/backoffice?charset=utf8mb4&parseTime=true&loc=UTC",
		o.dsn())
}
