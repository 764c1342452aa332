package wire

import "testing"

// TestFullRoundTrip exercises scenario S5: encode then decode a 2-faction /
// 3-planet / 1-starship world and check every field round-trips exactly.
func TestFullRoundTrip(t *testing.T) {
	want := FullPacket{
		Width:  1000,
		Height: 800,
		Factions: []FactionInfo{
			{ID: 0, Color: [4]float32{1, 0, 0, 1}},
			{ID: 1, Color: [4]float32{0, 0, 1, 1}},
		},
		Planets: []PlanetInfo{
			{PosX: 10, PosY: 20, MaxCapacity: 10, CurrentFleetSize: 5, OwnerID: 0, ClaimantID: -1},
			{PosX: 30, PosY: 40, MaxCapacity: 20, CurrentFleetSize: 0, OwnerID: -1, ClaimantID: -1},
			{PosX: 50, PosY: 60, MaxCapacity: 5, CurrentFleetSize: 1, OwnerID: -1, ClaimantID: 1},
		},
		Starships: []StarshipInfo{
			{PosX: 15, PosY: 25, VelX: 1, VelY: 2, OwnerID: 0, TargetPlanetIndex: 1},
		},
	}

	encoded := EncodeFull(want)
	got, err := DecodeFull(encoded)
	if err != nil {
		t.Fatalf("DecodeFull: %v", err)
	}

	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("dimensions mismatch: got %v/%v want %v/%v", got.Width, got.Height, want.Width, want.Height)
	}
	if len(got.Factions) != len(want.Factions) || len(got.Planets) != len(want.Planets) || len(got.Starships) != len(want.Starships) {
		t.Fatalf("count mismatch: %+v", got)
	}
	for i := range want.Factions {
		if got.Factions[i] != want.Factions[i] {
			t.Errorf("faction %d: got %+v want %+v", i, got.Factions[i], want.Factions[i])
		}
	}
	for i := range want.Planets {
		if got.Planets[i] != want.Planets[i] {
			t.Errorf("planet %d: got %+v want %+v", i, got.Planets[i], want.Planets[i])
		}
	}
	for i := range want.Starships {
		if got.Starships[i] != want.Starships[i] {
			t.Errorf("starship %d: got %+v want %+v", i, got.Starships[i], want.Starships[i])
		}
	}
}

func TestDecodeFullRejectsShortBuffer(t *testing.T) {
	_, err := DecodeFull([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected error for short buffer")
	}
}

func TestDecodeFullRejectsWrongType(t *testing.T) {
	buf := EncodeFull(FullPacket{})
	byteOrder.PutUint32(buf, TypeSnapshot)
	_, err := DecodeFull(buf)
	if err == nil {
		t.Fatal("expected error for wrong discriminant")
	}
}

func TestDecodeFullRejectsCountSizeMismatch(t *testing.T) {
	buf := EncodeFull(FullPacket{Planets: []PlanetInfo{{}}})
	// Claim two planets but only ship the bytes for one.
	byteOrder.PutUint32(buf[16:], 2)
	_, err := DecodeFull(buf)
	if err == nil {
		t.Fatal("expected error for count/size mismatch")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	want := SnapshotPacket{Planets: []SnapshotRecord{
		{CurrentFleetSize: 3.5, OwnerID: 0, ClaimantID: -1},
		{CurrentFleetSize: 0, OwnerID: -1, ClaimantID: -1},
	}}
	got, err := DecodeSnapshot(EncodeSnapshot(want))
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if len(got.Planets) != len(want.Planets) {
		t.Fatalf("count mismatch")
	}
	for i := range want.Planets {
		if got.Planets[i] != want.Planets[i] {
			t.Errorf("record %d: got %+v want %+v", i, got.Planets[i], want.Planets[i])
		}
	}
}

// TestSnapshotApplicationIdempotence supports invariant 6 at the codec
// layer: decoding the same bytes twice yields the same values both times.
func TestSnapshotApplicationIdempotence(t *testing.T) {
	buf := EncodeSnapshot(SnapshotPacket{Planets: []SnapshotRecord{{CurrentFleetSize: 7, OwnerID: 2, ClaimantID: -1}}})

	a, err := DecodeSnapshot(buf)
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	b, err := DecodeSnapshot(buf)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if a.Planets[0] != b.Planets[0] {
		t.Fatalf("decode not idempotent: %+v vs %+v", a.Planets[0], b.Planets[0])
	}
}

func TestMoveOrderRejectsZeroOrigins(t *testing.T) {
	buf := make([]byte, moveOrderHeaderSize)
	byteOrder.PutUint32(buf, TypeMoveOrder)
	byteOrder.PutUint32(buf[4:], 0)
	_, err := DecodeMoveOrder(buf)
	if err == nil {
		t.Fatal("expected error for origin_count == 0")
	}
}

func TestMoveOrderRoundTrip(t *testing.T) {
	want := MoveOrderPacket{DestinationIndex: 4, Origins: []int32{1, 2, 3}}
	got, err := DecodeMoveOrder(EncodeMoveOrder(want))
	if err != nil {
		t.Fatalf("DecodeMoveOrder: %v", err)
	}
	if got.DestinationIndex != want.DestinationIndex {
		t.Errorf("destination mismatch: %d vs %d", got.DestinationIndex, want.DestinationIndex)
	}
	if len(got.Origins) != len(want.Origins) {
		t.Fatalf("origin count mismatch")
	}
	for i := range want.Origins {
		if got.Origins[i] != want.Origins[i] {
			t.Errorf("origin %d: got %d want %d", i, got.Origins[i], want.Origins[i])
		}
	}
}

func TestFleetLaunchRoundTrip(t *testing.T) {
	want := FleetLaunchPacket{OriginIndex: 1, DestinationIndex: 2, ShipCount: 7, OwnerFactionID: 0, ShipSpawnRNGState: 0xDEADBEEF}
	got, err := DecodeFleetLaunch(EncodeFleetLaunch(want))
	if err != nil {
		t.Fatalf("DecodeFleetLaunch: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAssignmentRoundTrip(t *testing.T) {
	want := AssignmentPacket{FactionID: 3}
	got, err := DecodeAssignment(EncodeAssignment(want))
	if err != nil {
		t.Fatalf("DecodeAssignment: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestServerDisconnectRoundTrip(t *testing.T) {
	want := ServerDisconnectPacket{Reason: "server shutting down"}
	got, err := DecodeServerDisconnect(EncodeServerDisconnect(want))
	if err != nil {
		t.Fatalf("DecodeServerDisconnect: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestServerDisconnectTruncatesOverlongReason(t *testing.T) {
	reason := make([]byte, MaxServerDisconnectReasonLen+100)
	for i := range reason {
		reason[i] = 'a'
	}
	encoded := EncodeServerDisconnect(ServerDisconnectPacket{Reason: string(reason)})
	got, err := DecodeServerDisconnect(encoded)
	if err != nil {
		t.Fatalf("DecodeServerDisconnect: %v", err)
	}
	if len(got.Reason) != MaxServerDisconnectReasonLen {
		t.Fatalf("reason length = %d, want %d", len(got.Reason), MaxServerDisconnectReasonLen)
	}
}

func TestJoinAndServerFullPrefixes(t *testing.T) {
	if !IsJoin([]byte("JOIN")) {
		t.Error("bare JOIN should be recognized")
	}
	if !IsJoin([]byte("JOIN\x00\x00\x00\x00")) {
		t.Error("padded JOIN should be recognized")
	}
	if IsJoin([]byte("NOTJOIN")) {
		t.Error("non-JOIN payload falsely recognized")
	}
	if !IsServerFull([]byte("SERVER_FULL")) {
		t.Error("SERVER_FULL should be recognized")
	}
}

func TestLobbyStateRoundTrip(t *testing.T) {
	want := LobbyStatePacket{Factions: []LobbyFactionState{
		{FactionID: 0, Color: [4]float32{1, 0, 0, 1}, Connected: true},
		{FactionID: 1, Color: [4]float32{0, 1, 0, 1}, Connected: false},
	}}
	got, err := DecodeLobbyState(EncodeLobbyState(want))
	if err != nil {
		t.Fatalf("DecodeLobbyState: %v", err)
	}
	for i := range want.Factions {
		if got.Factions[i] != want.Factions[i] {
			t.Errorf("faction %d: got %+v want %+v", i, got.Factions[i], want.Factions[i])
		}
	}
}

func TestDebugChecksumRoundTrip(t *testing.T) {
	want := DebugChecksumPacket{Tick: 42}
	want.Digest[0] = 0xAB
	got, err := DecodeDebugChecksum(EncodeDebugChecksum(want))
	if err != nil {
		t.Fatalf("DecodeDebugChecksum: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
