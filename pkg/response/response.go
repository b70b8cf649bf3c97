package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the envelope used by the game backend and by the local control API.
type Body struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data,omitempty"`
	Msg  string          `json:"msg"`
}

type body struct {
	Code int         `json:"code"`
	Data interface{} `json:"data"`
	Msg  string      `json:"msg"`
}

func Success(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data, "")
}

func SuccessWithMsg(c *gin.Context, data interface{}, msg string) {
	JSON(c, http.StatusOK, data, msg)
}

func Error(c *gin.Context, status int, msg string) {
	JSON(c, status, gin.H{}, msg)
}

func JSON(c *gin.Context, status int, data interface{}, msg string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, body{
		Code: status,
		Data: data,
		Msg:  msg,
	})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, body{Code: status, Data: gin.H{}, Msg: msg})
}

// Decode unmarshals an envelope's data into out. Null or empty data leaves out untouched.
func (b Body) Decode(out interface{}) error {
	if len(b.Data) == 0 || string(b.Data) == "null" || out == nil {
		return nil
	}
	return json.Unmarshal(b.Data, out)
}
