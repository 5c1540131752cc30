package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tournevent/courierdz/pkg/courier"
)

const credentialHeaderPrefix = "X-Credential-"

// credentials collects X-Credential-<Key> headers. Keys are lower-cased,
// so X-Credential-Token becomes "token".
func credentials(c *gin.Context) courier.Credentials {
	creds := courier.Credentials{}
	for name, values := range c.Request.Header {
		if len(values) == 0 || len(name) <= len(credentialHeaderPrefix) {
			continue
		}
		if !strings.EqualFold(name[:len(credentialHeaderPrefix)], credentialHeaderPrefix) {
			continue
		}
		creds[strings.ToLower(name[len(credentialHeaderPrefix):])] = values[0]
	}
	return creds
}

// wilayaParam reads an optional wilaya query parameter. Absent means 0.
func wilayaParam(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) handleListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": s.dispatcher.Providers()})
}

func (s *Server) handleProvider(c *gin.Context) {
	meta, err := s.dispatcher.Metadata(c.Param("provider"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (s *Server) handleRules(c *gin.Context) {
	rules, err := s.dispatcher.Rules(c.Param("provider"), credentials(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (s *Server) handleTestCredentials(c *gin.Context) {
	valid, err := s.dispatcher.TestCredentials(c.Request.Context(), c.Param("provider"), credentials(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

func (s *Server) handleGetRates(c *gin.Context) {
	from, ok := wilayaParam(c, "from")
	if !ok {
		badRequest(c, "from must be a wilaya number")
		return
	}
	to, ok := wilayaParam(c, "to")
	if !ok {
		badRequest(c, "to must be a wilaya number")
		return
	}

	rates, err := s.dispatcher.GetRates(c.Request.Context(), c.Param("provider"), credentials(c), from, to)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

func (s *Server) bindOrder(c *gin.Context) (courier.OrderData, bool) {
	var data courier.OrderData
	if err := c.ShouldBindJSON(&data); err != nil {
		badRequest(c, "body must be a JSON object: "+err.Error())
		return nil, false
	}
	if data == nil {
		data = courier.OrderData{}
	}
	return data, true
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	data, ok := s.bindOrder(c)
	if !ok {
		return
	}

	order, err := s.dispatcher.CreateOrder(c.Request.Context(), c.Param("provider"), credentials(c), data)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) handleValidateOrder(c *gin.Context) {
	data, ok := s.bindOrder(c)
	if !ok {
		return
	}

	if err := s.dispatcher.ValidateCreate(c.Param("provider"), credentials(c), data); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (s *Server) handleGetOrder(c *gin.Context) {
	order, err := s.dispatcher.GetOrder(c.Request.Context(), c.Param("provider"), credentials(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) handleOrderLabel(c *gin.Context) {
	label, err := s.dispatcher.OrderLabel(c.Request.Context(), c.Param("provider"), credentials(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (s *Server) handleCancelOrder(c *gin.Context) {
	if err := s.dispatcher.CancelOrder(c.Request.Context(), c.Param("provider"), credentials(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
