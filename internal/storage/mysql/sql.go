package mysql

const insertAttemptSQL = `
INSERT INTO submission_attempts
  (id, user_id, category, package, home_size, frequency, total_rooms, final_price, state, error_kind, message, booking_id, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  state      = VALUES(state),
  error_kind = VALUES(error_kind),
  message    = VALUES(message),
  booking_id = COALESCE(VALUES(booking_id), submission_attempts.booking_id)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Newest first; aligns with the (user_id, created_at) index.
const recentAttemptsSQL = `
SELECT
  id,
  user_id,
  category,
  package,
  home_size,
  frequency,
  total_rooms,
  final_price,
  state,
  error_kind,
  message,
  booking_id,
  created_at
FROM submission_attempts
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`
