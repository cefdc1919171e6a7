package kling

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessKey = "ak-test"
	testSecretKey = "sk-test"
)

// captured is one request seen by the fake API.
type captured struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

// fakeAPI records requests and answers them with handle.
type fakeAPI struct {
	mu       sync.Mutex
	requests []captured
	handle   func(w http.ResponseWriter, r *http.Request, req captured)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := captured{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
	}
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &req.Body)
		}
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.handle == nil {
		writeData(w, map[string]any{"task_id": "task-1", "task_status": "submitted"})
		return
	}
	f.handle(w, r, req)
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) last() captured {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":       0,
		"message":    "SUCCEED",
		"request_id": "req-1",
		"data":       data,
	})
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	c, err := NewClient(testAccessKey, testSecretKey, WithBaseURL(server.URL))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func fastWait() []WaitOption {
	return []WaitOption{WithPollInterval(time.Millisecond), WithPollTimeout(5 * time.Second)}
}

func TestNewClient_Credentials(t *testing.T) {
	t.Run("missing access key", func(t *testing.T) {
		t.Setenv("KLING_ACCESS_KEY", "")
		t.Setenv("KLING_SECRET_KEY", "")

		_, err := NewClient("", "sk")
		assert.ErrorIs(t, err, ErrAccessKeyNotSet)
	})

	t.Run("missing secret key", func(t *testing.T) {
		t.Setenv("KLING_ACCESS_KEY", "")
		t.Setenv("KLING_SECRET_KEY", "")

		_, err := NewClient("ak", "")
		assert.ErrorIs(t, err, ErrSecretKeyNotSet)
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv("KLING_ACCESS_KEY", "env-ak")
		t.Setenv("KLING_SECRET_KEY", "env-sk")

		c, err := NewClient("", "")
		require.NoError(t, err)
		defer c.Close()
		assert.Equal(t, DefaultBaseURL, c.BaseURL())
	})
}

func TestClient_SignsEveryRequest(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	_, err := c.TextToVideo.Create(context.Background(), &TextToVideoRequest{Prompt: "a cat surfing"})
	require.NoError(t, err)

	auth := api.last().Auth
	require.True(t, strings.HasPrefix(auth, "Bearer "))

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(*jwt.Token) (any, error) {
		return []byte(testSecretKey), nil
	})
	require.NoError(t, err)
	assert.Equal(t, testAccessKey, claims.Issuer)
}

func TestTextToVideo_Create_OmitsAbsentFields(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	got, err := c.TextToVideo.Create(context.Background(), &TextToVideoRequest{
		Prompt:   "a cat surfing",
		CfgScale: Ptr(0.0),
		Duration: Duration10s,
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", got.ID)
	assert.Equal(t, StatusSubmitted, got.Status)

	req := api.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/videos/text2video", req.Path)
	assert.Equal(t, map[string]any{
		"prompt":    "a cat surfing",
		"cfg_scale": 0.0,
		"duration":  "10",
	}, req.Body)
}

func TestTextToVideo_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   *TextToVideoRequest
		field string
	}{
		{"missing prompt", &TextToVideoRequest{}, "prompt"},
		{"prompt too long", &TextToVideoRequest{Prompt: strings.Repeat("x", 2501)}, "prompt"},
		{"cfg scale out of range", &TextToVideoRequest{Prompt: "p", CfgScale: Ptr(1.5)}, "cfg_scale"},
		{"bad mode", &TextToVideoRequest{Prompt: "p", Mode: "ultra"}, "mode"},
		{"bad aspect ratio", &TextToVideoRequest{Prompt: "p", AspectRatio: "4:3"}, "aspect_ratio"},
		{"bad duration", &TextToVideoRequest{Prompt: "p", Duration: "7"}, "duration"},
		{
			"simple camera without config",
			&TextToVideoRequest{Prompt: "p", CameraControl: &CameraControl{Type: CameraSimple}},
			"camera_control.config",
		},
		{
			"camera axis out of range",
			&TextToVideoRequest{Prompt: "p", CameraControl: &CameraControl{
				Type:   CameraSimple,
				Config: &CameraConfig{Zoom: Ptr(11.0)},
			}},
			"camera_control.config.zoom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			c := newTestClient(t, api)

			_, err := c.TextToVideo.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve.Fields)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
			assert.Equal(t, 0, api.count(), "no request may be sent for invalid input")
		})
	}
}

func TestTextToVideo_Create_PredefinedCamera(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	_, err := c.TextToVideo.Create(context.Background(), &TextToVideoRequest{
		Prompt:        "p",
		CameraControl: &CameraControl{Type: CameraForwardUp},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "forward_up"}, api.last().Body["camera_control"])
}

func TestImageToVideo_Routing(t *testing.T) {
	t.Run("two images use the multi-image path", func(t *testing.T) {
		api := &fakeAPI{}
		c := newTestClient(t, api)

		_, err := c.ImageToVideo.Create(context.Background(), &ImageToVideoRequest{
			Images: []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
			Prompt: "two people meeting",
		})
		require.NoError(t, err)

		req := api.last()
		assert.Equal(t, "/v1/videos/multi-image2video", req.Path)
		assert.Equal(t, []any{
			map[string]any{"image": "https://example.com/a.jpg"},
			map[string]any{"image": "https://example.com/b.jpg"},
		}, req.Body["image_list"])
		assert.NotContains(t, req.Body, "image")
	})

	t.Run("one image uses the single-image path", func(t *testing.T) {
		api := &fakeAPI{}
		c := newTestClient(t, api)

		_, err := c.ImageToVideo.Create(context.Background(), &ImageToVideoRequest{
			Image:  "https://example.com/a.jpg",
			Prompt: "the person starts walking",
		})
		require.NoError(t, err)

		req := api.last()
		assert.Equal(t, "/v1/videos/image2video", req.Path)
		assert.Equal(t, "https://example.com/a.jpg", req.Body["image"])
		assert.NotContains(t, req.Body, "image_list")
	})

	t.Run("a single entry in images uses the single-image path", func(t *testing.T) {
		api := &fakeAPI{}
		c := newTestClient(t, api)

		_, err := c.ImageToVideo.Create(context.Background(), &ImageToVideoRequest{
			Images: []string{"https://example.com/a.jpg"},
		})
		require.NoError(t, err)

		req := api.last()
		assert.Equal(t, "/v1/videos/image2video", req.Path)
		assert.Equal(t, "https://example.com/a.jpg", req.Body["image"])
	})
}

func TestImageToVideo_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   *ImageToVideoRequest
		field string
	}{
		{"no image", &ImageToVideoRequest{Prompt: "p"}, "image"},
		{
			"too many images",
			&ImageToVideoRequest{Images: []string{"a", "b", "c", "d", "e"}, Prompt: "p"},
			"image_list",
		},
		{"multi without prompt", &ImageToVideoRequest{Images: []string{"a", "b"}}, "prompt"},
		{
			"multi with end frame",
			&ImageToVideoRequest{Images: []string{"a", "b"}, Prompt: "p", ImageTail: "c"},
			"image_tail",
		},
		{
			"too many dynamic masks",
			&ImageToVideoRequest{Image: "a", DynamicMasks: make([]DynamicMask, 7)},
			"dynamic_masks",
		},
		{
			"short trajectory",
			&ImageToVideoRequest{Image: "a", DynamicMasks: []DynamicMask{{
				Mask:         "m",
				Trajectories: []TrajectoryPoint{{X: 1, Y: 1}},
			}}},
			"dynamic_masks[0].trajectories",
		},
		{
			"conflicting image and images",
			&ImageToVideoRequest{Image: "a", Images: []string{"b"}},
			"images",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			c := newTestClient(t, api)

			_, err := c.ImageToVideo.Create(context.Background(), tt.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
			assert.Equal(t, 0, api.count())
		})
	}
}

func TestImageToVideo_TaskAPIFor(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	multi := &ImageToVideoRequest{Images: []string{"a", "b"}}
	_, err := c.ImageToVideo.TaskAPIFor(multi).Get(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "/v1/videos/multi-image2video/task-1", api.last().Path)

	_, err = c.ImageToVideo.TaskAPIFor(&ImageToVideoRequest{Image: "a"}).Get(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "/v1/videos/image2video/task-1", api.last().Path)
}

func TestTaskAPI_ExternalTaskIDRoundTrip(t *testing.T) {
	var mu sync.Mutex
	byKey := map[string]map[string]any{}

	api := &fakeAPI{}
	api.handle = func(w http.ResponseWriter, r *http.Request, req captured) {
		mu.Lock()
		defer mu.Unlock()
		if r.Method == http.MethodPost {
			ext, _ := req.Body["external_task_id"].(string)
			snapshot := map[string]any{
				"task_id":     "srv-42",
				"task_status": "processing",
				"task_info":   map[string]any{"external_task_id": ext},
			}
			byKey["srv-42"] = snapshot
			byKey[ext] = snapshot
			writeData(w, snapshot)
			return
		}
		key := strings.TrimPrefix(req.Path, "/v1/videos/text2video/")
		snapshot, ok := byKey[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":1201,"message":"task not found","request_id":"r"}`))
			return
		}
		writeData(w, snapshot)
	}
	c := newTestClient(t, api)
	ctx := context.Background()

	ext := NewExternalTaskID()
	created, err := c.TextToVideo.Create(ctx, &TextToVideoRequest{Prompt: "p", ExternalTaskID: ext})
	require.NoError(t, err)

	byExternal, err := c.TextToVideo.Get(ctx, ext)
	require.NoError(t, err)
	byServer, err := c.TextToVideo.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, byServer, byExternal)
	assert.Equal(t, "srv-42", byExternal.ID)
	assert.Equal(t, ext, byExternal.Info.ExternalTaskID)
}

func TestTaskAPI_Get_APIError(t *testing.T) {
	api := &fakeAPI{}
	api.handle = func(w http.ResponseWriter, _ *http.Request, _ captured) {
		_, _ = w.Write([]byte(`{"code": 51004, "message": "insufficient balance", "request_id": "abc"}`))
	}
	c := newTestClient(t, api)

	got, err := c.TextToAudio.Get(context.Background(), "task-1")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPI)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 51004, apiErr.Code)
	assert.Equal(t, "insufficient balance", apiErr.Message)
	assert.Equal(t, "abc", apiErr.RequestID)
}

func TestTaskAPI_Get_EmptyID(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	_, err := c.Avatar.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, api.count())
}

func TestTaskAPI_Get_MalformedResponse(t *testing.T) {
	api := &fakeAPI{}
	api.handle = func(w http.ResponseWriter, _ *http.Request, _ captured) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}
	c := newTestClient(t, api)

	_, err := c.Effects.Get(context.Background(), "task-1")
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.NotErrorIs(t, err, ErrAPI)
}

func TestTaskAPI_List(t *testing.T) {
	api := &fakeAPI{}
	api.handle = func(w http.ResponseWriter, _ *http.Request, _ captured) {
		writeData(w, []map[string]any{
			{"task_id": "a", "task_status": "succeed"},
			{"task_id": "b", "task_status": "processing"},
		})
	}
	c := newTestClient(t, api)

	tasks, err := c.VideoExtension.List(context.Background(), 2, 50)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.True(t, tasks[0].Status.IsTerminal())

	req := api.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/v1/videos/video-extend", req.Path)
	assert.Equal(t, "pageNum=2&pageSize=50", req.Query)
}

func TestTaskAPI_List_Bounds(t *testing.T) {
	tests := []struct {
		page, size int
		field      string
	}{
		{0, 30, "pageNum"},
		{1001, 30, "pageNum"},
		{1, 0, "pageSize"},
		{1, 501, "pageSize"},
	}

	for _, tt := range tests {
		api := &fakeAPI{}
		c := newTestClient(t, api)

		_, err := c.TextToVideo.List(context.Background(), tt.page, tt.size)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, tt.field, ve.Fields[0].Field)
		assert.Equal(t, 0, api.count())
	}
}

func TestTaskAPI_WaitForCompletion(t *testing.T) {
	statuses := []string{"submitted", "processing", "succeed"}
	api := &fakeAPI{}
	var fetches int
	api.handle = func(w http.ResponseWriter, _ *http.Request, req captured) {
		status := statuses[min(fetches, len(statuses)-1)]
		fetches++
		data := map[string]any{"task_id": "task-1", "task_status": status}
		if status == "succeed" {
			data["task_result"] = map[string]any{
				"videos": []map[string]any{{"id": "v1", "url": "https://cdn.example.com/v1.mp4", "duration": "5.1"}},
			}
		}
		writeData(w, data)
	}
	c := newTestClient(t, api)

	got, err := c.TextToVideo.WaitForCompletion(context.Background(), "task-1", fastWait()...)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, got.Status)
	assert.Equal(t, "https://cdn.example.com/v1.mp4", got.FirstVideoURL())
	assert.Equal(t, 3, api.count())
	assert.Equal(t, "/v1/videos/text2video/task-1", api.last().Path)
}

func TestTaskAPI_WaitForCompletion_Failed(t *testing.T) {
	api := &fakeAPI{}
	api.handle = func(w http.ResponseWriter, _ *http.Request, _ captured) {
		writeData(w, map[string]any{"task_id": "task-1", "task_status": "failed", "task_status_msg": "prompt rejected"})
	}
	c := newTestClient(t, api)

	_, err := c.Avatar.WaitForCompletion(context.Background(), "task-1", fastWait()...)
	var failed *TaskFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "task-1", failed.TaskID)
	assert.Equal(t, "prompt rejected", failed.Message)
}

func TestTaskAPI_WaitForCompletion_Timeout(t *testing.T) {
	api := &fakeAPI{}
	api.handle = func(w http.ResponseWriter, _ *http.Request, _ captured) {
		writeData(w, map[string]any{"task_id": "task-1", "task_status": "processing"})
	}
	c := newTestClient(t, api)

	_, err := c.LipSync.WaitForCompletion(context.Background(), "task-1", WithPollInterval(time.Second), WithPollTimeout(0))
	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "task-1", te.TaskID)
	assert.Equal(t, 1, api.count())
}

func TestTaskAPI_WaitForCompletion_InvalidInterval(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	_, err := c.TextToVideo.WaitForCompletion(context.Background(), "task-1", WithPollInterval(0))
	assert.ErrorIs(t, err, ErrInvalidPollInterval)
	assert.Equal(t, 0, api.count())
}

func TestLipSync_TwoStepFlow(t *testing.T) {
	api := &fakeAPI{}
	api.handle = func(w http.ResponseWriter, _ *http.Request, req captured) {
		if req.Path == "/v1/videos/identify-face" {
			writeData(w, map[string]any{
				"session_id": "sess-1",
				"face_data": []map[string]any{
					{"face_id": "0", "face_image": "https://cdn.example.com/f0.png", "start_time": 0, "end_time": 4000},
				},
			})
			return
		}
		writeData(w, map[string]any{"task_id": "ls-1", "task_status": "submitted"})
	}
	c := newTestClient(t, api)
	ctx := context.Background()

	session, err := c.LipSync.IdentifyFaces(ctx, &IdentifyFacesRequest{VideoURL: "https://example.com/in.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", session.SessionID)
	require.Len(t, session.Faces, 1)
	assert.Equal(t, map[string]any{"video_url": "https://example.com/in.mp4"}, api.last().Body)

	face, ok := session.Face("0")
	require.True(t, ok)

	req := NewLipSyncRequest(session, FaceChoice{
		FaceID:          face.ID,
		AudioID:         "audio-1",
		SoundStartTime:  0,
		SoundEndTime:    3000,
		SoundInsertTime: 500,
		SoundVolume:     Ptr(2.0),
	})
	got, err := c.LipSync.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "ls-1", got.ID)

	sent := api.last()
	assert.Equal(t, "/v1/videos/advanced-lip-sync", sent.Path)
	assert.Equal(t, "sess-1", sent.Body["session_id"])
	choices, ok := sent.Body["face_choose"].([]any)
	require.True(t, ok)
	require.Len(t, choices, 1)
	choice := choices[0].(map[string]any)
	assert.Equal(t, 2.0, choice["sound_volume"])
	assert.NotContains(t, choice, "original_audio_volume")
}

func TestLipSync_Validation(t *testing.T) {
	valid := FaceChoice{FaceID: "0", AudioID: "a", SoundEndTime: 1000}

	tests := []struct {
		name  string
		req   *LipSyncRequest
		field string
	}{
		{"no session", &LipSyncRequest{FaceChoose: []FaceChoice{valid}}, "session_id"},
		{"no faces", &LipSyncRequest{SessionID: "s"}, "face_choose"},
		{"two faces", &LipSyncRequest{SessionID: "s", FaceChoose: []FaceChoice{valid, valid}}, "face_choose"},
		{
			"volume above two",
			&LipSyncRequest{SessionID: "s", FaceChoose: []FaceChoice{{FaceID: "0", AudioID: "a", SoundEndTime: 1, SoundVolume: Ptr(2.5)}}},
			"face_choose[0].sound_volume",
		},
		{
			"end before start",
			&LipSyncRequest{SessionID: "s", FaceChoose: []FaceChoice{{FaceID: "0", AudioID: "a", SoundStartTime: 500, SoundEndTime: 100}}},
			"face_choose[0].sound_end_time",
		},
		{
			"no audio",
			&LipSyncRequest{SessionID: "s", FaceChoose: []FaceChoice{{FaceID: "0", SoundEndTime: 1}}},
			"face_choose[0].audio_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			c := newTestClient(t, api)

			_, err := c.LipSync.Create(context.Background(), tt.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
			assert.Equal(t, 0, api.count())
		})
	}
}

func TestLipSync_IdentifyFaces_RequiresOneSource(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	_, err := c.LipSync.IdentifyFaces(context.Background(), &IdentifyFacesRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.LipSync.IdentifyFaces(context.Background(), &IdentifyFacesRequest{VideoID: "v", VideoURL: "u"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, api.count())
}

func TestEffects_Create(t *testing.T) {
	t.Run("single image scene", func(t *testing.T) {
		api := &fakeAPI{}
		c := newTestClient(t, api)

		_, err := c.Effects.Create(context.Background(), &EffectsRequest{
			EffectScene: "pet_lion",
			Input:       SingleImageEffect{Image: "https://example.com/cat.jpg", Duration: Duration5s},
		})
		require.NoError(t, err)

		req := api.last()
		assert.Equal(t, "/v1/videos/effects", req.Path)
		assert.Equal(t, "pet_lion", req.Body["effect_scene"])
		assert.Equal(t, map[string]any{"image": "https://example.com/cat.jpg", "duration": "5"}, req.Body["input"])
	})

	t.Run("dual character scene", func(t *testing.T) {
		api := &fakeAPI{}
		c := newTestClient(t, api)

		_, err := c.Effects.Create(context.Background(), &EffectsRequest{
			EffectScene: "hug",
			Input: DualCharacterEffect{
				ModelName: "kling-v1-6",
				Images:    []string{"left.jpg", "right.jpg"},
				Duration:  Duration5s,
			},
		})
		require.NoError(t, err)

		input := api.last().Body["input"].(map[string]any)
		assert.Equal(t, []any{"left.jpg", "right.jpg"}, input["images"])
		assert.NotContains(t, input, "mode")
	})

	t.Run("unknown scene names are passed through", func(t *testing.T) {
		api := &fakeAPI{}
		c := newTestClient(t, api)

		_, err := c.Effects.Create(context.Background(), &EffectsRequest{
			EffectScene: "brand_new_scene_2026",
			Input:       SingleImageEffect{Image: "x", Duration: Duration5s},
		})
		require.NoError(t, err)
	})

	t.Run("dual scene needs two images", func(t *testing.T) {
		api := &fakeAPI{}
		c := newTestClient(t, api)

		_, err := c.Effects.Create(context.Background(), &EffectsRequest{
			EffectScene: "hug",
			Input:       DualCharacterEffect{Images: []string{"left.jpg"}, Duration: Duration5s},
		})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "input.images", ve.Fields[0].Field)
		assert.Equal(t, 0, api.count())
	})

	t.Run("input required", func(t *testing.T) {
		api := &fakeAPI{}
		c := newTestClient(t, api)

		_, err := c.Effects.Create(context.Background(), &EffectsRequest{EffectScene: "hug"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAudio_Create(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)
	ctx := context.Background()

	_, err := c.TextToAudio.Create(ctx, &TextToAudioRequest{Prompt: "rain on a tin roof", Duration: 5})
	require.NoError(t, err)
	assert.Equal(t, "/v1/audio/text-to-audio", api.last().Path)

	_, err = c.TextToAudio.Create(ctx, &TextToAudioRequest{Prompt: "rain", Duration: 12})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.VideoToAudio.Create(ctx, &VideoToAudioRequest{VideoID: "vid-1", ASMRMode: Ptr(false)})
	require.NoError(t, err)
	req := api.last()
	assert.Equal(t, "/v1/audio/video-to-audio", req.Path)
	assert.Equal(t, map[string]any{"video_id": "vid-1", "asmr_mode": false}, req.Body)

	_, err = c.VideoToAudio.Create(ctx, &VideoToAudioRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTTS_Create(t *testing.T) {
	api := &fakeAPI{}
	api.handle = func(w http.ResponseWriter, _ *http.Request, _ captured) {
		writeData(w, map[string]any{
			"task_id":     "tts-1",
			"task_status": "succeed",
			"task_result": map[string]any{
				"audios": []map[string]any{{"id": "a1", "url": "https://cdn.example.com/a1.mp3", "duration": "1.8"}},
			},
		})
	}
	c := newTestClient(t, api)

	got, err := c.TTS.Create(context.Background(), &TTSRequest{
		Text:          "Hello world",
		VoiceID:       "voice_001",
		VoiceLanguage: VoiceEnglish,
	})
	require.NoError(t, err)
	require.Len(t, got.Result.Audios, 1)
	assert.Equal(t, "https://cdn.example.com/a1.mp3", got.Result.Audios[0].URL)
	assert.Equal(t, "/v1/audio/tts", api.last().Path)

	_, err = c.TTS.Create(context.Background(), &TTSRequest{Text: "hi", VoiceID: "v", VoiceLanguage: "fr"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.TTS.Create(context.Background(), &TTSRequest{Text: "hi", VoiceID: "v", VoiceLanguage: "en", VoiceSpeed: Ptr(0.5)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAvatar_Create_RequiresOneAudioSource(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)
	ctx := context.Background()

	_, err := c.Avatar.Create(ctx, &AvatarRequest{Image: "face.jpg"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.Avatar.Create(ctx, &AvatarRequest{Image: "face.jpg", AudioID: "a", SoundFile: "s"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.Avatar.Create(ctx, &AvatarRequest{Image: "face.jpg", SoundFile: "https://example.com/s.mp3"})
	require.NoError(t, err)
	assert.Equal(t, "/v1/videos/avatar/image2video", api.last().Path)
}

func TestClient_Close(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.TextToVideo.Create(context.Background(), &TextToVideoRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrClosed)

	_, err = c.Download(context.Background(), "https://cdn.example.com/v.mp4", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 0, api.count())
}

func TestClient_Download(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("mp4-bytes"))
	}))
	defer cdn.Close()

	c := newTestClient(t, &fakeAPI{})

	var buf bytes.Buffer
	n, err := c.Download(context.Background(), cdn.URL+"/v.mp4", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "mp4-bytes", buf.String())
}
