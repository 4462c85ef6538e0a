package webdriver

import (
	"math"
	"net/http"
)

// ClickAt presses and releases the primary button at viewport coordinates,
// using the actions endpoint rather than an element-targeted click so the
// topmost layer at that point receives the event.
func (c *Client) ClickAt(x, y float64) error {
	payload := map[string]any{
		"actions": []any{
			map[string]any{
				"type": "pointer",
				"id":   "mouse",
				"parameters": map[string]any{
					"pointerType": "mouse",
				},
				"actions": []any{
					map[string]any{
						"type":     "pointerMove",
						"duration": 0,
						"origin":   "viewport",
						"x":        int(math.Round(x)),
						"y":        int(math.Round(y)),
					},
					map[string]any{"type": "pointerDown", "button": 0},
					map[string]any{"type": "pointerUp", "button": 0},
				},
			},
		},
	}
	if _, err := c.request(http.MethodPost, c.sessionPath("/actions"), payload); err != nil {
		return err
	}
	// Release input state so the next action chain starts clean.
	_, err := c.request(http.MethodDelete, c.sessionPath("/actions"), nil)
	return err
}
