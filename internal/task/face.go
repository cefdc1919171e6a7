package task

// Face is one face detected in a source video by face identification.
type Face struct {
	ID        string `json:"face_id"`
	ImageURL  string `json:"face_image"`
	StartTime int64  `json:"start_time"` // Milliseconds into the source video
	EndTime   int64  `json:"end_time"`   // Milliseconds into the source video
}

// FaceSession groups the faces found in one video. The session id is opaque
// server state referenced by a later lip-sync submission.
type FaceSession struct {
	SessionID string `json:"session_id"`
	Faces     []Face `json:"face_data"`
}

// Face returns the face with the given id.
func (s *FaceSession) Face(id string) (Face, bool) {
	for _, f := range s.Faces {
		if f.ID == id {
			return f, true
		}
	}
	return Face{}, false
}
